// Package mmap provides read-only memory-mapped files. Arrow and Parquet
// readers seek around their input, and a mapping serves those reads
// straight from the page cache.
package mmap

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// Reader is a read-only mapping of a whole file. It implements io.ReaderAt
// and is safe for concurrent reads until Close.
type Reader struct {
	file *os.File
	data []byte
	mu   sync.RWMutex
}

// Open maps path into memory. Empty files are valid and map to no data.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path) //nolint:gosec // G304: path is supplied by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open file").
			WithDetail("path", path)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to stat file").
			WithDetail("path", path)
	}

	r := &Reader{file: file}
	if size := stat.Size(); size > 0 {
		data, err := mmap(file, int(size))
		if err != nil {
			file.Close()
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to mmap file").
				WithDetail("path", path)
		}
		// only a hint, a refusal changes nothing
		_ = adviseSequential(data)
		r.data = data
	}
	return r, nil
}

// Len returns the size of the mapping in bytes.
func (r *Reader) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Bytes returns the mapped data. The slice is read-only and must not be
// used after Close.
func (r *Reader) Bytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// NewReader returns a seekable reader over the mapping.
func (r *Reader) NewReader() *bytes.Reader {
	return bytes.NewReader(r.Bytes())
}

// ReadAt implements io.ReaderAt.
func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.file == nil {
		return 0, errors.New(errors.ErrorTypeFile, "mmap: reader is closed")
	}
	if off < 0 {
		return 0, errors.Newf(errors.ErrorTypeIndexOutOfRange, "mmap: negative offset %d", off)
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the file and closes it
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.data != nil {
		err = munmap(r.data)
		r.data = nil
	}
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.file = nil
	}
	return err
}
