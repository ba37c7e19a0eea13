package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/starford/acropad/internal/apperr"
)

const newFileMode fs.FileMode = 0o644

// Read returns the content of the file at path. The content must be valid
// UTF-8; there is no lossy fallback.
func (l *Layer) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("vault: read %s: %w: %w", path, apperr.ErrNotFound, err)
		}
		return "", fmt.Errorf("vault: read %s: %w: %w", path, apperr.ErrIO, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("vault: read %s: %w", path, apperr.ErrInvalidEncoding)
	}
	return string(data), nil
}

// Save atomically replaces the content of the file at path: tmp file, fsync,
// rename. The parent directory must already exist. Symlinks are written
// through and an existing file keeps its permissions.
func (l *Layer) Save(path, content string) error {
	if err := validatePath("save", path); err != nil {
		return err
	}

	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	mode := newFileMode
	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("vault: save %s: %w: is a directory", path, apperr.ErrIO)
	case err == nil:
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("vault: save %s: %w: %w", path, apperr.ErrIO, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".acropad-tmp-*")
	if err != nil {
		return fmt.Errorf("vault: save %s: create temp: %w: %w", path, apperr.ErrIO, err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(content); err != nil {
		return fmt.Errorf("vault: save %s: write temp: %w: %w", path, apperr.ErrIO, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("vault: save %s: chmod: %w: %w", path, apperr.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("vault: save %s: fsync: %w: %w", path, apperr.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("vault: save %s: close temp: %w: %w", path, apperr.ErrIO, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("vault: save %s: rename: %w: %w", path, apperr.ErrIO, err)
	}
	success = true
	return nil
}

// validatePath rejects paths that can never name a file for op.
func validatePath(op, path string) error {
	switch {
	case strings.TrimSpace(path) == "":
		return fmt.Errorf("vault: %s: %w: path is empty", op, apperr.ErrInvalidPath)
	case strings.ContainsRune(path, 0):
		return fmt.Errorf("vault: %s %q: %w: contains NUL byte", op, path, apperr.ErrInvalidPath)
	case os.IsPathSeparator(path[len(path)-1]):
		return fmt.Errorf("vault: %s %s: %w: names a directory", op, path, apperr.ErrInvalidPath)
	}
	return nil
}
