// Package columnar implements tabula's typed, immutable column model.
//
// # Overview
//
// A DataFrame is an ordered collection of heterogeneously typed columns that
// all share one row count. Each column holds values of exactly one native Go
// type, selected by its Kind:
//
//	Kind        Token        Go type
//	KindInt     "Int"        int64
//	KindDouble  "Double"     float64
//	KindBoolean "Boolean"    bool
//	KindString  "String"     string
//	KindCategory "Category"  string (plus the set of distinct values)
//	KindTimestamp "Timestamp" time.Time (an absolute instant, stored in UTC)
//
// # Typed Access
//
// Columns are stored type-erased (AnyColumn) but are only ever handed back
// in typed form through a ColumnID, which pairs a name with a ColumnType[T]:
//
//	ageID, err := columnar.GetColumnID(df, 1, columnar.Int)
//	ages, err := columnar.GetColumn(df, ageID)
//	for age := range ages.Values() {
//		fmt.Println(age) // age is an int64
//	}
//
//	name, err := columnar.GetValueAt(df, 0, columnar.StringCol("Name"))
//
// Asking for a column at a position with the wrong ColumnType fails with a
// type_mismatch error; asking for a (name, type) pair that does not exist
// fails with not_found, even when a column of that name exists under
// another type.
//
// # Building Columns
//
// Builders accumulate values and metadata and are frozen exactly once:
//
//	col := columnar.NewIntBuilder("Age").
//		AddAll(42, 99, 67).
//		PutMetaData("unit", "years").
//		Build()
//
//	genders := columnar.NewCategoryBuilder("Gender").
//		AddAll("Female", "Male", "Female").
//		Build()
//	genders.Categories() // [Female Male]
//
//	df, err := columnar.NewDataFrame(col, genders)
//
// NewDataFrame fails with row_count_mismatch when the columns differ in length.
//
// # Concurrency
//
// Builders belong to a single goroutine. Columns and DataFrames never change
// after construction and may be shared freely for reading.
package columnar
