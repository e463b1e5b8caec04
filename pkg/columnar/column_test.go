package columnar

import (
	"slices"
	"testing"
	"time"

	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBuild(t *testing.T) {
	col := NewIntBuilder("Age").
		Add(42).
		AddAll(99, 67).
		PutMetaData("unit", "years").
		PutAllMetaData(map[string]string{"source": "census"}).
		Build()

	assert.Equal(t, IntCol("Age"), col.ID())
	assert.Equal(t, KindInt, col.Kind())
	assert.Equal(t, 3, col.RowCount())
	assert.Equal(t, []int64{42, 99, 67}, col.ToSlice())
	assert.Equal(t, map[string]string{"unit": "years", "source": "census"}, col.MetaData())

	v, err := col.ValueAt(1)
	require.NoError(t, err)
	assert.Equal(t, int64(99), v)
}

func TestBuilderReuseDoesNotMutateColumn(t *testing.T) {
	b := NewStringBuilder("Name").AddAll("Ada", "Homer").PutMetaData("k", "v")
	col := b.Build()

	b.Add("Hillary").PutMetaData("k", "changed")

	assert.Equal(t, []string{"Ada", "Homer"}, col.ToSlice())
	assert.Equal(t, map[string]string{"k": "v"}, col.MetaData())
}

func TestColumnMetaDataIsCopied(t *testing.T) {
	col := NewDoubleBuilder("Height").Add(1.74).PutMetaData("unit", "m").Build()

	md := col.MetaData()
	md["unit"] = "ft"

	unit, ok := col.MetaDataValue("unit")
	require.True(t, ok)
	assert.Equal(t, "m", unit)
}

func TestNewColumnCopiesInputs(t *testing.T) {
	values := []bool{true, false}
	md := map[string]string{"a": "b"}
	col := NewColumn(BooleanCol("Vegetarian"), values, md)

	values[0] = false
	md["a"] = "c"

	assert.Equal(t, []bool{true, false}, col.ToSlice())
	assert.Equal(t, map[string]string{"a": "b"}, col.MetaData())
}

func TestEmptyColumn(t *testing.T) {
	col := NewTimestampBuilder("When").Build()

	assert.Equal(t, 0, col.RowCount())
	assert.Empty(t, col.MetaData())
	assert.NotNil(t, col.MetaData())
	assert.Empty(t, slices.Collect(col.Values()))
}

func TestValueAtOutOfRange(t *testing.T) {
	col := NewIntBuilder("Age").AddAll(1, 2).Build()

	for _, i := range []int{-1, 2, 100} {
		_, err := col.ValueAt(i)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeIndexOutOfRange))
	}

	_, err := col.AnyValueAt(5)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIndexOutOfRange))
}

func TestValuesIsRestartable(t *testing.T) {
	ts := time.Date(1975, time.August, 26, 5, 9, 16, 0, time.UTC)
	col := NewTimestampBuilder("Born").AddAll(ts, ts.AddDate(1, 0, 0)).Build()

	first := slices.Collect(col.Values())
	second := slices.Collect(col.Values())

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)

	rows := 0
	for i, v := range col.All() {
		assert.Equal(t, first[i], v)
		rows++
	}
	assert.Equal(t, 2, rows)
}

func TestAnyValueAt(t *testing.T) {
	var col AnyColumn = NewBooleanBuilder("Vegetarian").AddAll(true, false).Build()

	v, err := col.AnyValueAt(0)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestCategoryBuilder(t *testing.T) {
	b := NewCategoryBuilder("Gender").
		AddAll("Female", "Male").
		Add("Female").
		PutMetaData("levels", "2")
	col := b.Build()

	assert.Equal(t, CategoryCol("Gender"), col.ID())
	assert.Equal(t, KindCategory, col.Kind())
	assert.Equal(t, 3, col.RowCount())
	assert.Equal(t, []string{"Female", "Male"}, col.Categories())
	assert.Equal(t, 2, col.CategoryCount())
	assert.True(t, col.HasCategory("Male"))
	assert.False(t, col.HasCategory("Other"))
	assert.Equal(t, []string{"Female", "Male", "Female"}, col.ToSlice())

	b.Add("Other")
	assert.False(t, col.HasCategory("Other"))
	assert.Equal(t, 3, col.RowCount())
}

func TestCategoryOrderIndependent(t *testing.T) {
	a := NewCategoryColumn(CategoryCol("g"), []string{"Male", "Female", "Female", "Male"}, nil)
	b := NewCategoryColumn(CategoryCol("g"), []string{"Female", "Male"}, nil)

	assert.Equal(t, a.Categories(), b.Categories())
}
