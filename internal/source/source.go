// Package source loads the input of the linescan command into memory.
//
// Plain files are memory-mapped where the platform allows it, so the
// scanners read the page cache directly. Files ending in ".lz4" are
// decompressed into a heap buffer.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// Source is an input file held in memory.
type Source struct {
	name    string
	data    []byte
	release func() error
}

// Open loads the named file.
func Open(name string) (*Source, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(name, ".lz4") {
		data, err := decompress(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
		}
		return &Source{name: name, data: data}, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return &Source{name: name, data: data}, nil
	}

	data, release, err := mapFile(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", name, err)
	}
	return &Source{name: name, data: data, release: release}, nil
}

// FromBytes wraps an in-memory buffer.
func FromBytes(name string, data []byte) *Source {
	return &Source{name: name, data: data}
}

// Name returns the file name the Source was opened with.
func (s *Source) Name() string { return s.name }

// Bytes returns the file contents. The slice is invalid after Close.
func (s *Source) Bytes() []byte { return s.data }

// Mapped reports whether the contents are memory-mapped.
func (s *Source) Mapped() bool { return s.release != nil }

// Close releases the contents.
func (s *Source) Close() error {
	s.data = nil
	if s.release == nil {
		return nil
	}
	release := s.release
	s.release = nil
	return release()
}

func decompress(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, lz4.NewReader(r)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
