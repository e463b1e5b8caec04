package schema

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

func assertPeopleSchema(t *testing.T, s *Schema) {
	t.Helper()

	assert.Equal(t, "People", s.Title)
	assert.Equal(t, "people.tsv", s.DataFileName)
	assert.Equal(t, []string{"Name", "Age", "Height", "Vegetarian", "Date Of Birth", "Gender", "Notes"}, s.FieldNames())

	kinds := make([]columnar.Kind, len(s.Fields))
	for i, f := range s.Fields {
		kinds[i] = f.Type
	}
	assert.Equal(t, []columnar.Kind{
		columnar.KindString,
		columnar.KindInt,
		columnar.KindDouble,
		columnar.KindBoolean,
		columnar.KindTimestamp,
		columnar.KindCategory,
		columnar.KindString, // unknown token "Foo"
	}, kinds)

	assert.Equal(t, map[string]string{"unit": "years"}, s.Fields[1].MetaData)
	assert.NotNil(t, s.Fields[0].MetaData)
	assert.Empty(t, s.Fields[0].MetaData)

	assert.True(t, s.Fields[4].HasFormat())
	assert.Equal(t, "yyyyMMddHHmmss", s.Fields[4].Format)
	assert.False(t, s.Fields[1].HasFormat())
}

func TestLoadJSON(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "people.json"))
	require.NoError(t, err)
	assertPeopleSchema(t, s)
}

func TestLoadYAML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)
	assertPeopleSchema(t, s)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestLoadMalformed(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"fields": [`))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	_, err = LoadYAML(strings.NewReader("fields: [\n"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestFieldDefaults(t *testing.T) {
	s, err := LoadJSON(strings.NewReader(`{"dataFileName": "x.tsv", "fields": [{}]}`))
	require.NoError(t, err)
	require.Len(t, s.Fields, 1)

	f := s.Fields[0]
	assert.Equal(t, DefaultName, f.Name)
	assert.Equal(t, DefaultType, f.Type)
	assert.False(t, f.HasFormat())
	assert.Empty(t, f.MetaData)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New("data.tsv",
		NewField("Age", columnar.KindInt).WithMetaData("unit", "years"),
		NewField("Born", columnar.KindTimestamp).WithFormat("yyyy-MM-dd"),
		NewField("Gender", columnar.KindCategory),
	)

	for _, name := range []string{"schema.json", "schema.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, s))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, s, loaded)
		})
	}
}

func TestWithMetaDataDoesNotAlias(t *testing.T) {
	base := NewField("a", columnar.KindInt).WithMetaData("k", "v")
	derived := base.WithMetaData("k", "other")

	assert.Equal(t, "v", base.MetaData["k"])
	assert.Equal(t, "other", derived.MetaData["k"])
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New("x.tsv", NewField("a", columnar.KindInt)).Validate())

	err := New("x.tsv").Validate()
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
