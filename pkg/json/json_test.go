package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type descriptor struct {
	Name     string            `json:"name"`
	MetaData map[string]string `json:"metaData,omitempty"`
}

func TestDecode(t *testing.T) {
	var d descriptor
	err := Decode(strings.NewReader(`{"name":"Age","metaData":{"unit":"years"}}`), &d)
	require.NoError(t, err)

	assert.Equal(t, "Age", d.Name)
	assert.Equal(t, map[string]string{"unit": "years"}, d.MetaData)
}

func TestDecodeInvalid(t *testing.T) {
	var d descriptor
	assert.Error(t, Decode(strings.NewReader(`{"name":`), &d))
}

func TestMarshalUnmarshal(t *testing.T) {
	data, err := Marshal(descriptor{Name: "Gender"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Gender"}`, string(data))

	var d descriptor
	require.NoError(t, Unmarshal(data, &d))
	assert.Equal(t, "Gender", d.Name)
}

func TestEncodeIndent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeIndent(&buf, descriptor{Name: "<b>"}))

	assert.Contains(t, buf.String(), "\n  \"name\": \"<b>\"")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestBufferPool(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("leftover")
	PutBuffer(buf)

	assert.Equal(t, 0, GetBuffer().Len())
}
