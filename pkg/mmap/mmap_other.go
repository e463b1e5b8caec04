//go:build !linux && !darwin

package mmap

import (
	"io"
	"os"
)

// mmap reads the file into memory where mapping is unavailable.
func mmap(f *os.File, length int) ([]byte, error) {
	data := make([]byte, length)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

func munmap([]byte) error { return nil }

func adviseSequential([]byte) error { return nil }
