// Package uploads stores user-submitted files on local disk.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes multipart uploads into a base directory, prefixing each
// filename with a UUID so concurrent uploads of the same name never collide.
type Store struct {
	baseDir string
}

// NewStore creates the base directory if needed and returns a Store rooted there.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("uploads: base directory must not be empty")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: create base directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save persists the uploaded file and returns the path it was written to,
// relative to the process working directory. The stored name keeps the
// original extension but replaces the rest with a UUID prefix.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("uploads: open upload: %w", err)
	}
	defer func() { _ = src.Close() }()

	name := sanitizeName(fh.Filename)
	dstPath := filepath.Join(s.baseDir, uuid.New().String()+"_"+name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("uploads: create file: %w", err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("uploads: write file: %w", err)
	}
	return dstPath, nil
}

// sanitizeName strips any path components and characters that would be
// awkward on disk, keeping the extension intact.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return name
}
