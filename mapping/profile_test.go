package mapping

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfile(t *testing.T) {
	yaml := `
separator: ";"
header: false
time_layouts:
  - "02/01/2006"
fields:
  Id: 0
  Email: 3
  Name: 1
`

	p, err := ParseProfile([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, ';', p.SeparatorRune())
	assert.False(t, p.HasHeader())
	assert.Equal(t, []string{"02/01/2006"}, p.TimeLayouts)

	table, err := p.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"Id", "Name", "Email"}, table.Fields())
}

func TestProfileDefaults(t *testing.T) {
	p, err := ParseProfile([]byte("fields: {Id: 0}\n"))
	require.NoError(t, err)

	assert.Equal(t, ',', p.SeparatorRune())
	assert.True(t, p.HasHeader())
}

func TestProfileAutoSetForcesHeader(t *testing.T) {
	p, err := ParseProfile([]byte("header: false\nautoset: true\n"))
	require.NoError(t, err)
	assert.True(t, p.HasHeader())
}

func TestProfileValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"long separator", "separator: ';;'\n"},
		{"negative position", "fields: {Id: -1}\n"},
		{"empty layout", "time_layouts: ['']\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid profile")
		})
	}
}

func TestParseProfileBadYAML(t *testing.T) {
	_, err := ParseProfile([]byte("fields: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile YAML")
}

func TestDecodeProfile(t *testing.T) {
	p, err := DecodeProfile(map[string]any{
		"separator": "|",
		"autoset":   "true",
		"fields":    map[string]any{"Id": "2"},
	})
	require.NoError(t, err)

	assert.Equal(t, '|', p.SeparatorRune())
	assert.True(t, p.AutoSet)
	assert.Equal(t, 2, p.Fields["Id"])

	_, err = DecodeProfile(map[string]any{"unknown": 1})
	require.Error(t, err)
}

func TestWriteAndLoadProfile(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Set("Id", 0))
	require.NoError(t, table.Set("Name", 1))

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, WriteProfile(ProfileFromTable(table, '\t', true), path))

	loaded, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, '\t', loaded.SeparatorRune())
	assert.True(t, loaded.HasHeader())
	assert.Equal(t, map[string]int{"Id": 0, "Name": 1}, loaded.Fields)
}

func TestLoadProfileMissing(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read profile")
}
