package columnar

import "github.com/ajitpratap0/tabula/pkg/pool"

// CategoryColumn is a string column that also exposes the distinct set of
// values it contains.
type CategoryColumn struct {
	*Column[string]
	categories *pool.Interner
}

// NewCategoryColumn copies values and metaData into a new category column.
func NewCategoryColumn(id ColumnID[string], values []string, metaData map[string]string) *CategoryColumn {
	b := NewCategoryBuilder(id.Name())
	b.AddAll(values...)
	b.PutAllMetaData(metaData)
	return b.Build()
}

// Categories returns the distinct values, sorted.
func (c *CategoryColumn) Categories() []string {
	return c.categories.Strings()
}

// CategoryCount returns the number of distinct values.
func (c *CategoryColumn) CategoryCount() int { return c.categories.Len() }

// HasCategory reports whether value occurs in the column.
func (c *CategoryColumn) HasCategory(value string) bool {
	return c.categories.Contains(value)
}

// CategoryBuilder accumulates a category column, interning values as they
// are added so repeated categories share storage.
type CategoryBuilder struct {
	values     *Builder[string]
	categories *pool.Interner
}

// NewCategoryBuilder returns a builder for a Category column.
func NewCategoryBuilder(name string) *CategoryBuilder {
	return &CategoryBuilder{
		values:     NewBuilder(CategoryCol(name)),
		categories: pool.NewInterner(0),
	}
}

func (b *CategoryBuilder) ID() ColumnID[string] { return b.values.ID() }

func (b *CategoryBuilder) Len() int { return b.values.Len() }

func (b *CategoryBuilder) Add(value string) *CategoryBuilder {
	b.values.Add(b.categories.Intern(value))
	return b
}

func (b *CategoryBuilder) AddAll(values ...string) *CategoryBuilder {
	for _, v := range values {
		b.Add(v)
	}
	return b
}

func (b *CategoryBuilder) PutMetaData(key, value string) *CategoryBuilder {
	b.values.PutMetaData(key, value)
	return b
}

func (b *CategoryBuilder) PutAllMetaData(metaData map[string]string) *CategoryBuilder {
	b.values.PutAllMetaData(metaData)
	return b
}

// Build freezes the accumulated values into a category column.
func (b *CategoryBuilder) Build() *CategoryColumn {
	col := &CategoryColumn{
		Column:     b.values.Build(),
		categories: b.categories,
	}
	b.categories = pool.NewInterner(0)
	return col
}

// BuildColumn is Build returning the type-erased column.
func (b *CategoryBuilder) BuildColumn() AnyColumn { return b.Build() }
