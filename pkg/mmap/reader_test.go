package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpenAndRead(t *testing.T) {
	r, err := Open(writeFile(t, "Name\tAge\nAda\t42\n"))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 16, r.Len())
	assert.Equal(t, "Name\tAge\nAda\t42\n", string(r.Bytes()))

	all, err := io.ReadAll(r.NewReader())
	require.NoError(t, err)
	assert.Equal(t, r.Bytes(), all)
}

func TestReadAt(t *testing.T) {
	r, err := Open(writeFile(t, "0123456789"))
	require.NoError(t, err)
	defer r.Close()

	buf := make([]byte, 4)
	n, err := r.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "3456", string(buf))

	n, err = r.ReadAt(buf, 8)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 2, n)

	_, err = r.ReadAt(buf, 10)
	assert.Equal(t, io.EOF, err)

	_, err = r.ReadAt(buf, -1)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIndexOutOfRange))
}

func TestEmptyFile(t *testing.T) {
	r, err := Open(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	require.NoError(t, r.Close())
}

func TestClose(t *testing.T) {
	r, err := Open(writeFile(t, "abc"))
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.ReadAt(make([]byte, 1), 0)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}
