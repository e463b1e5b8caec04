// Package errors provides examples of structured error handling in tabula.
package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// Example demonstrates basic error creation with row context.
func Example() {
	err := errors.New(errors.ErrorTypeRowShape, "row 4 contains 5 values (but should match column count 6)").
		WithDetail(errors.DetailRow, 4).
		WithDetail(errors.DetailExpected, 6).
		WithDetail(errors.DetailActual, 5)

	fmt.Println(err.Error())

	// Output:
	// row_shape_mismatch: row 4 contains 5 values (but should match column count 6)
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	originalErr := io.ErrUnexpectedEOF

	err := errors.Wrap(originalErr, errors.ErrorTypeData, "failed to read row").
		WithDetail(errors.DetailRow, 42)

	if errors.IsType(err, errors.ErrorTypeData) {
		fmt.Println("This is a data error")
	}

	row, _ := errors.DetailOf(err, errors.DetailRow)
	fmt.Println("row:", row)

	// Output:
	// This is a data error
	// row: 42
}

// ExampleTypeOf demonstrates dispatching on the error category.
func ExampleTypeOf() {
	errs := []error{
		errors.New(errors.ErrorTypeNotFound, "no column Age:Double"),
		errors.New(errors.ErrorTypeTypeMismatch, "column 1 is Int, not Double"),
		io.EOF,
	}

	for _, err := range errs {
		fmt.Println(errors.TypeOf(err))
	}

	// Output:
	// not_found
	// type_mismatch
	// internal
}
