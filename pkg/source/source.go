// Package source opens data files for decoding. Files are located relative
// to a base directory and decompressed according to their extension, so
// "people.tsv.gz" reads exactly like "people.tsv".
package source

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/tabula/pkg/compression"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

const bufferSize = 64 * 1024

// File is an open, possibly decompressed, data file.
type File struct {
	path      string
	algorithm compression.Algorithm
	file      *os.File
	reader    io.ReadCloser
}

// Resolve joins name onto baseDir. Absolute names and an empty baseDir
// leave name unchanged.
func Resolve(baseDir, name string) string {
	if baseDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(baseDir, name)
}

// OpenIn opens name relative to baseDir.
func OpenIn(baseDir, name string) (*File, error) {
	return Open(Resolve(baseDir, name))
}

// Open opens path and wraps it in the decompressor its extension selects.
func Open(path string) (*File, error) {
	if path == "" {
		return nil, errors.New(errors.ErrorTypeFile, "no data file name given")
	}

	f, err := os.Open(path) //nolint:gosec // G304: path comes from the caller's schema or command line
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open data file").
			WithDetail("path", path)
	}

	alg, _ := compression.FromPath(path)
	r, err := compression.NewReader(bufio.NewReaderSize(f, bufferSize), alg)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open compressed data file").
			WithDetail("path", path).
			WithDetail("compression", string(alg))
	}

	return &File{path: path, algorithm: alg, file: f, reader: r}, nil
}

func (f *File) Path() string { return f.path }

// Algorithm returns the compression the file was opened with.
func (f *File) Algorithm() compression.Algorithm { return f.algorithm }

// Name returns the base name without the compression extension.
func (f *File) Name() string {
	_, name := compression.FromPath(filepath.Base(f.path))
	return name
}

func (f *File) Read(p []byte) (int, error) {
	return f.reader.Read(p)
}

// Close releases the decompressor and the underlying file.
func (f *File) Close() error {
	rerr := f.reader.Close()
	ferr := f.file.Close()
	if rerr != nil {
		return rerr
	}
	return ferr
}

// Sink is a data file opened for writing. Bytes written to it are
// compressed according to the file's extension.
type Sink struct {
	path      string
	algorithm compression.Algorithm
	file      *os.File
	buf       *bufio.Writer
	writer    io.WriteCloser
}

// Create creates or truncates path and wraps it in the compressor its
// extension selects. Close must be called to flush the stream.
func Create(path string) (*Sink, error) {
	if path == "" {
		return nil, errors.New(errors.ErrorTypeFile, "no data file name given")
	}

	f, err := os.Create(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create data file").
			WithDetail("path", path)
	}

	alg, _ := compression.FromPath(path)
	buf := bufio.NewWriterSize(f, bufferSize)
	w, err := compression.NewWriter(buf, alg, compression.Default)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create compressed data file").
			WithDetail("path", path).
			WithDetail("compression", string(alg))
	}

	return &Sink{path: path, algorithm: alg, file: f, buf: buf, writer: w}, nil
}

func (s *Sink) Path() string { return s.path }

// Algorithm returns the compression the file is written with.
func (s *Sink) Algorithm() compression.Algorithm { return s.algorithm }

func (s *Sink) Write(p []byte) (int, error) {
	return s.writer.Write(p)
}

// Close flushes the compressor and the buffer, then closes the file.
func (s *Sink) Close() error {
	err := s.writer.Close()
	if ferr := s.buf.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if cerr := s.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write data file").
			WithDetail("path", s.path)
	}
	return nil
}
