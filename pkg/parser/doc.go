// Package parser decodes delimited text into typed data frames.
//
// Two modes are supported. Header-driven parsing reads the column names
// from the first row and a type token per column from the second:
//
//	Name	Age	Date Of Birth	Gender
//	String	Int	Timestamp	Category
//	Ada	42	19750826050916	Female
//
//	df, err := parser.ParseTabDelimited(ctx, r, parser.WithTimestampPattern("yyyyMMddHHmmss"))
//
// Schema-driven parsing takes the columns from a schema.Schema and treats
// every row as data:
//
//	s, _ := schema.Load("people.json")
//	p, _ := parser.New()
//	df, err := p.ParseSchemaFile(ctx, s, "testdata")
//
// Type tokens are the canonical kind names (Int, Double, Boolean, String,
// Category, Timestamp). Unknown tokens decode as String unless a
// BuilderFactory is registered for them with WithBuilderFactory.
//
// Failures are *errors.Error values typed schema_mismatch, row_shape_mismatch
// or value_parse. Row numbers in their details are 1-based and count the
// header rows consumed: the first data row of header-driven input is row 3.
package parser
