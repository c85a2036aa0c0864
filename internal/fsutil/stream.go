package fsutil

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens path for reading. Gzip and zstd streams are detected by their
// magic bytes and decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	rc, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &stack{ReadCloser: rc, file: f}, nil
}

// NewReader wraps r with a decompressor when its first bytes carry a known
// magic. The returned closer does not close r.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case bytes.HasPrefix(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return io.NopCloser(br), nil
	}
}

// Create creates path for writing. A ".gz" or ".zst" suffix selects the
// matching compressor. Close flushes the compressor before closing the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	var w io.WriteCloser
	switch {
	case strings.HasSuffix(path, ".gz"):
		w = gzip.NewWriter(f)
	case strings.HasSuffix(path, ".zst"):
		w, err = zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
	default:
		return f, nil
	}
	return &stack{WriteCloser: w, file: f}, nil
}

// stack closes a codec and then the file underneath it.
type stack struct {
	io.ReadCloser
	io.WriteCloser
	file *os.File
}

func (s *stack) Close() error {
	var err error
	if s.ReadCloser != nil {
		err = s.ReadCloser.Close()
	}
	if s.WriteCloser != nil {
		err = s.WriteCloser.Close()
	}
	return errors.Join(err, s.file.Close())
}
