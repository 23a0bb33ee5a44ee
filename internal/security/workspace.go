// Package security confines file access of the CLI to the working directory.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrPathEscapes  = errors.New("path escapes workspace")
	ErrAbsolutePath = errors.New("absolute paths are not allowed")
	ErrEmptyPath    = errors.New("empty path not allowed")
)

// Workspace reads plaintext sources and writes rendered pages, refusing any
// path that leaves its root directory. All access goes through os.Root so
// symlinks cannot escape either.
type Workspace struct {
	root *os.Root
	dir  string
}

// Open creates a Workspace rooted at dir
func Open(dir string) (*Workspace, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace root: %w", err)
	}

	return &Workspace{root: root, dir: absPath}, nil
}

// Close releases the root handle
func (w *Workspace) Close() error {
	if w.root != nil {
		return w.root.Close()
	}
	return nil
}

// Dir returns the absolute workspace directory
func (w *Workspace) Dir() string {
	return w.dir
}

// Clean validates a user-provided path and returns it relative to the
// workspace with forward slashes. Absolute paths inside the workspace are
// accepted and made relative.
func (w *Workspace) Clean(userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}

	if filepath.IsAbs(userPath) {
		rel, err := filepath.Rel(w.dir, userPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", ErrAbsolutePath, userPath)
		}
		userPath = rel
	}

	if !filepath.IsLocal(userPath) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, userPath)
	}

	return filepath.ToSlash(filepath.Clean(userPath)), nil
}

// ReadFile reads a file inside the workspace
func (w *Workspace) ReadFile(path string) ([]byte, error) {
	clean, err := w.Clean(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	f, err := w.root.Open(filepath.FromSlash(clean))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// WriteFile writes data to a file inside the workspace, replacing it if it exists
func (w *Workspace) WriteFile(path string, data []byte, perm os.FileMode) error {
	clean, err := w.Clean(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	f, err := w.root.OpenFile(filepath.FromSlash(clean), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
