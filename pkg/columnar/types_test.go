package columnar

import (
	"encoding"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ encoding.TextMarshaler   = KindInt
	_ encoding.TextUnmarshaler = new(Kind)
)

func TestByDescriptionRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		assert.Equal(t, k, ByDescription(k.Description()), k.Description())
		assert.True(t, IsKnownDescription(k.Description()))
	}
}

func TestByDescriptionFallsBackToString(t *testing.T) {
	tests := []string{"Foo", "", "int", "INT", "timestamp", " Int"}
	for _, token := range tests {
		t.Run(token, func(t *testing.T) {
			assert.Equal(t, KindString, ByDescription(token))
			assert.False(t, IsKnownDescription(token))
		})
	}
}

func TestKindDescriptions(t *testing.T) {
	assert.Equal(t, "Int", KindInt.String())
	assert.Equal(t, "Double", KindDouble.String())
	assert.Equal(t, "Boolean", KindBoolean.String())
	assert.Equal(t, "String", KindString.String())
	assert.Equal(t, "Category", KindCategory.String())
	assert.Equal(t, "Timestamp", KindTimestamp.String())
	assert.Equal(t, "String", Kind(200).Description())
}

func TestKindText(t *testing.T) {
	text, err := KindTimestamp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Timestamp", string(text))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("Category")))
	assert.Equal(t, KindCategory, k)

	require.NoError(t, k.UnmarshalText([]byte("Nope")))
	assert.Equal(t, KindString, k)
}

func TestColumnTypes(t *testing.T) {
	assert.Equal(t, KindInt, Int.Kind())
	assert.Equal(t, KindDouble, Double.Kind())
	assert.Equal(t, KindBoolean, Boolean.Kind())
	assert.Equal(t, KindString, String.Kind())
	assert.Equal(t, KindCategory, Category.Kind())
	assert.Equal(t, KindTimestamp, Timestamp.Kind())

	assert.NotEqual(t, String, Category, "same native type, different tags")
	assert.Equal(t, "Category", Category.Description())
}

func TestColumnIDEquality(t *testing.T) {
	assert.Equal(t, IntCol("Age"), IntCol("Age"))
	assert.NotEqual(t, IntCol("Age"), IntCol("age"))
	assert.NotEqual(t, StringCol("Gender"), CategoryCol("Gender"))
	assert.Equal(t, Key{Name: "Gender", Kind: KindCategory}, CategoryCol("Gender").Key())
	assert.Equal(t, "Height:Double", DoubleCol("Height").String())

	ids := map[ColumnID[string]]bool{StringCol("x"): true}
	assert.True(t, ids[StringCol("x")])
	assert.False(t, ids[CategoryCol("x")])
}
