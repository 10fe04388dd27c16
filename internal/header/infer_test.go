package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv-mapper/diagnostic"
	"csv-mapper/internal/header"
)

var presidentFields = []string{"PresidencyId", "President", "TookOffice", "LeftOffice", "Party"}

func positions(t *testing.T, line string, sink diagnostic.Sink) map[string]int {
	t.Helper()

	out := map[string]int{}
	for field, pos := range header.Infer(line, ',', presidentFields, sink).All() {
		out[field] = pos
	}

	return out
}

func TestInferAnyOrder(t *testing.T) {
	got := positions(t, "Party,President,PresidencyId,LeftOffice,TookOffice", nil)
	assert.Equal(t, map[string]int{
		"Party": 0, "President": 1, "PresidencyId": 2, "LeftOffice": 3, "TookOffice": 4,
	}, got)
}

func TestInferNormalizesCells(t *testing.T) {
	got := positions(t, "\ufeff\"presidency id\", PRESIDENT ,tookoffice", nil)
	assert.Equal(t, map[string]int{"PresidencyId": 0, "President": 1, "TookOffice": 2}, got)
}

func TestInferUnmatchedColumn(t *testing.T) {
	var c diagnostic.Collector

	got := positions(t, "President,Nickname,Partyy", &c)
	assert.Equal(t, map[string]int{"President": 0}, got)

	require.Len(t, c.Warnings, 2)
	assert.Equal(t, diagnostic.CodeUnmatchedColumn, c.Warnings[0].Code)
	assert.Equal(t, "cannot autoset Nickname", c.Warnings[0].Message)
	assert.Equal(t, 1, c.Warnings[0].Column)

	assert.Equal(t, 2, c.Warnings[1].Column)
	assert.Contains(t, c.Warnings[1].Suggestions, "Party")
	assert.False(t, c.HasErrors())
}

func TestInferDuplicateColumnLastWins(t *testing.T) {
	var c diagnostic.Collector

	got := positions(t, "party,President,PARTY", &c)
	assert.Equal(t, map[string]int{"Party": 2, "President": 1}, got)

	require.Len(t, c.Infos, 1)
	assert.Equal(t, diagnostic.CodeDuplicateColumn, c.Infos[0].Code)
	assert.Equal(t, "Party", c.Infos[0].Field)
	assert.Equal(t, 2, c.Infos[0].Column)
	assert.Empty(t, c.Warnings)
}

func TestInferCustomSeparator(t *testing.T) {
	table := header.Infer("President;Party", ';', presidentFields, nil)

	pos, ok := table.Lookup("Party")
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestAnalyze(t *testing.T) {
	cols := header.Analyze("Party,Presidnt,party", ',', presidentFields)
	require.Len(t, cols, 3)

	assert.Equal(t, header.StatusMatched, cols[0].Status)
	assert.Equal(t, "Party", cols[0].Field)
	assert.Equal(t, -1, cols[0].Shadowed)

	assert.Equal(t, header.StatusUnmatched, cols[1].Status)
	assert.Empty(t, cols[1].Field)
	assert.Equal(t, []string{"President"}, cols[1].Suggestions[:1])

	assert.Equal(t, header.StatusDuplicate, cols[2].Status)
	assert.Equal(t, 0, cols[2].Shadowed)
	assert.Equal(t, "party", cols[2].Raw)

	assert.Equal(t, "duplicate", header.StatusDuplicate.String())
}
