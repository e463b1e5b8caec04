package parser

import "io"

// SliceRowReader serves rows from memory. It is handy for data that was
// tokenized elsewhere, such as rows produced by another decoder.
type SliceRowReader struct {
	rows [][]string
	next int
}

// NewSliceRowReader returns a RowReader over rows. The rows are not copied.
func NewSliceRowReader(rows [][]string) *SliceRowReader {
	return &SliceRowReader{rows: rows}
}

// Read returns the next row, or io.EOF when all rows have been served.
// The returned slice is a copy so the parser may trim it in place.
func (r *SliceRowReader) Read() ([]string, error) {
	if r.next >= len(r.rows) {
		return nil, io.EOF
	}
	row := append([]string(nil), r.rows[r.next]...)
	r.next++
	return row, nil
}
