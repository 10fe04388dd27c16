package csvmapper_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csvmapper "csv-mapper"
	"csv-mapper/diagnostic"
	"csv-mapper/mapping"
)

func TestNewFromProfileExplicitFields(t *testing.T) {
	path := writeCSV(t, "Bob|2\nAlice|1\n")

	profile, err := mapping.ParseProfile([]byte(`
separator: "|"
header: false
fields:
  id: 1
  name: 0
`))
	require.NoError(t, err)

	m, err := csvmapper.NewFromProfile(path, personSchema, profile, quietConfig())
	require.NoError(t, err)
	assert.Equal(t, '|', m.Config().Separator)
	assert.False(t, m.Config().HasHeader)

	got, err := m.Collect()
	require.NoError(t, err)
	assert.Equal(t, []person{{ID: 2, Name: "Bob"}, {ID: 1, Name: "Alice"}}, got)
}

func TestNewFromProfileOverridesInferredMapping(t *testing.T) {
	path := writeCSV(t, "id,name,alias\n1,Alice,Al\n")

	profile := &mapping.Profile{AutoSet: true, Fields: map[string]int{"name": 2}}

	m, err := csvmapper.NewFromProfile(path, personSchema, profile, autoSetConfig(diagnostic.Discard))
	require.NoError(t, err)

	got, err := m.Collect()
	require.NoError(t, err)
	assert.Equal(t, []person{{ID: 1, Name: "Al"}}, got)
}

func TestNewFromProfileErrors(t *testing.T) {
	path := writeCSV(t, "id\n1\n")

	_, err := csvmapper.NewFromProfile(path, personSchema, nil, quietConfig())
	require.ErrorIs(t, err, csvmapper.ErrConfiguration)

	_, err = csvmapper.NewFromProfile(path, personSchema, &mapping.Profile{Separator: ";;"}, quietConfig())
	require.ErrorIs(t, err, csvmapper.ErrConfiguration)

	_, err = csvmapper.NewFromProfile(path, personSchema, &mapping.Profile{Fields: map[string]int{"nickname": 0}}, quietConfig())
	require.ErrorIs(t, err, csvmapper.ErrMapping)
	require.ErrorIs(t, err, csvmapper.ErrFieldNotFound)
}

func TestMapperProfileRoundTrip(t *testing.T) {
	path := writeCSV(t, "name;id\nAlice;1\n")

	cfg := autoSetConfig(diagnostic.Discard)
	cfg.Separator = ';'

	m, err := csvmapper.New(path, personSchema, cfg)
	require.NoError(t, err)

	profilePath := filepath.Join(t.TempDir(), "people.yaml")
	require.NoError(t, mapping.WriteProfile(m.Profile(), profilePath))

	loaded, err := mapping.LoadProfile(profilePath)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"id": 1, "name": 0}, loaded.Fields)
	assert.Equal(t, ";", loaded.Separator)

	replay, err := csvmapper.NewFromProfile(path, personSchema, loaded, quietConfig())
	require.NoError(t, err)

	got, err := replay.Collect()
	require.NoError(t, err)
	assert.Equal(t, []person{{ID: 1, Name: "Alice"}}, got)
}
