package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/benchsplit/internal/model"
)

// Writer persists category match lists under a root directory
type Writer struct {
	root       string
	fileMode   os.FileMode
	createDirs bool
}

// NewWriter creates a Writer rooted at root
func NewWriter(root string, fileMode os.FileMode, createDirs bool) *Writer {
	if root == "" {
		root = "."
	}
	if fileMode == 0 {
		fileMode = 0644
	}
	return &Writer{
		root:       root,
		fileMode:   fileMode,
		createDirs: createDirs,
	}
}

// ArtifactPath returns <root>/<category>/<category>_data<date>.txt
func ArtifactPath(root, category, date string) string {
	return filepath.Join(root, category, category+"_data"+date+".txt")
}

// ValidateDate rejects labels that would place the file outside its
// category directory. Any other string, including the empty one, is used
// verbatim.
func ValidateDate(date string) error {
	if strings.ContainsAny(date, `/`+string(filepath.Separator)+"\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// Write overwrites the category file for date with matches joined by
// newlines (no trailing newline).
func (w *Writer) Write(ctx context.Context, category, date string, matches model.MatchList) (*model.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	dir := filepath.Join(w.root, category)
	if err := w.ensureDir(dir); err != nil {
		return nil, err
	}

	path := ArtifactPath(w.root, category, date)
	if err := os.WriteFile(path, []byte(matches.Content()), w.fileMode); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	return &model.Artifact{
		Category: category,
		Date:     date,
		Path:     path,
		Entries:  len(matches),
	}, nil
}

func (w *Writer) ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrOutputDirMissing, dir)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if !w.createDirs {
			return fmt.Errorf("%w: %s", ErrOutputDirMissing, dir)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("stat output directory: %w", err)
	}
}
