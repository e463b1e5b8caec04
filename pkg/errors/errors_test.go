package errors

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesStack(t *testing.T) {
	err := New(ErrorTypeValueParse, "bad cell")

	assert.Equal(t, ErrorTypeValueParse, err.Type)
	assert.Equal(t, "value_parse: bad cell", err.Error())
	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestNewCapturesStack")
}

func TestNewf(t *testing.T) {
	err := Newf(ErrorTypeNotFound, "no column %s:%s", "Age", "Int")
	assert.Equal(t, "not_found: no column Age:Int", err.Error())
}

func TestWrapPreservesCauseAndStack(t *testing.T) {
	inner := New(ErrorTypeValueParse, "inner")
	outer := Wrap(inner, ErrorTypeData, "outer")

	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, stderrors.Is(outer, inner))
	assert.Equal(t, "data: outer: value_parse: inner", outer.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeData, "nothing"))
}

func TestWrapForeignError(t *testing.T) {
	err := Wrap(io.EOF, ErrorTypeFile, "read failed")

	assert.True(t, stderrors.Is(err, io.EOF))
	assert.NotEmpty(t, err.Stack)
}

func TestDetails(t *testing.T) {
	err := New(ErrorTypeValueParse, "bad").
		WithDetail(DetailRow, 3).
		WithDetail(DetailColumn, "Age")

	v, ok := err.Detail(DetailRow)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = DetailOf(Wrap(err, ErrorTypeValueParse, "again"), DetailColumn)
	assert.False(t, ok, "details live on the error that set them")
	assert.Nil(t, v)

	v, ok = DetailOf(err, DetailColumn)
	require.True(t, ok)
	assert.Equal(t, "Age", v)

	_, ok = DetailOf(io.EOF, DetailRow)
	assert.False(t, ok)
}

func TestIsTypeAndTypeOf(t *testing.T) {
	err := New(ErrorTypeRowCount, "lengths differ")

	assert.True(t, IsType(err, ErrorTypeRowCount))
	assert.False(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(io.EOF, ErrorTypeRowCount))
	assert.Equal(t, ErrorTypeRowCount, TypeOf(err))
	assert.Equal(t, ErrorTypeInternal, TypeOf(io.EOF))
}
