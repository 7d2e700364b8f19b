package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"
)

// Reader loads benchmark logs into memory
type Reader struct {
	maxBytes int64
}

// NewReader creates a Reader. maxBytes <= 0 disables the size limit.
func NewReader(maxBytes int64) *Reader {
	return &Reader{maxBytes: maxBytes}
}

// ReadResult contains the loaded log
type ReadResult struct {
	Path    string
	Content string
	Size    int64
}

// Read reads the whole file at path
func (r *Reader) Read(ctx context.Context, path string) (*ReadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
		}
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	var src io.Reader = f
	if r.maxBytes > 0 {
		// One extra byte tells an exact fit apart from an oversized file
		src = io.LimitReader(f, r.maxBytes+1)
	}

	body, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if r.maxBytes > 0 && int64(len(body)) > r.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInputTooLarge, path, r.maxBytes)
	}

	if !utf8.Valid(body) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrInputUnreadable, path)
	}

	return &ReadResult{
		Path:    path,
		Content: string(body),
		Size:    int64(len(body)),
	}, nil
}
