package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/acropad/internal/apperr"
)

// NewNoteContent is the text of a freshly created note.
const NewNoteContent = "# New Note\n\nStart writing here..."

const newDirMode fs.FileMode = 0o755

// UntitledName returns the default file name for a new note created at now.
func (l *Layer) UntitledName() string {
	return fmt.Sprintf("Untitled-%d.md", l.now().UnixMilli())
}

// Create writes a new note named name inside dir and returns its path. dir is
// created if missing. An empty name yields an "Untitled-<millis>.md" note.
// An existing file is never overwritten.
func (l *Layer) Create(dir, name string) (string, error) {
	if strings.TrimSpace(dir) == "" || strings.ContainsRune(dir, 0) {
		return "", fmt.Errorf("vault: create %q: %w: bad directory", dir, apperr.ErrInvalidPath)
	}
	if name == "" {
		name = l.UntitledName()
	}
	if err := validateName(name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, newDirMode); err != nil {
		return "", fmt.Errorf("vault: create %s: mkdir: %w: %w", dir, apperr.ErrIO, err)
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, newFileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("vault: create %s: %w: %w", path, apperr.ErrExists, err)
		}
		return "", fmt.Errorf("vault: create %s: %w: %w", path, apperr.ErrIO, err)
	}
	if _, err := f.WriteString(NewNoteContent); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("vault: create %s: write: %w: %w", path, apperr.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("vault: create %s: close: %w: %w", path, apperr.ErrIO, err)
	}
	return path, nil
}

// Delete removes the file at path. A symlink is removed, not its target.
// Directories are refused.
func (l *Layer) Delete(path string) error {
	if err := validatePath("delete", path); err != nil {
		return err
	}
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("vault: delete %s: %w: %w", path, apperr.ErrNotFound, err)
	case err != nil:
		return fmt.Errorf("vault: delete %s: %w: %w", path, apperr.ErrIO, err)
	case info.IsDir():
		return fmt.Errorf("vault: delete %s: %w: is a directory", path, apperr.ErrIO)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("vault: delete %s: %w: %w", path, apperr.ErrIO, err)
	}
	return nil
}

// Rename moves the file or directory at from to to. It refuses to replace an
// existing entry at to, and the parent of to must already exist.
func (l *Layer) Rename(from, to string) error {
	if err := validatePath("rename", from); err != nil {
		return err
	}
	if err := validatePath("rename", to); err != nil {
		return err
	}

	if _, err := os.Lstat(from); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("vault: rename %s: %w: %w", from, apperr.ErrNotFound, err)
		}
		return fmt.Errorf("vault: rename %s: %w: %w", from, apperr.ErrIO, err)
	}

	// Checked before the rename; a writer racing us between the two calls
	// can still be replaced.
	_, err := os.Lstat(to)
	switch {
	case err == nil:
		return fmt.Errorf("vault: rename %s -> %s: %w", from, to, apperr.ErrExists)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("vault: rename %s -> %s: %w: %w", from, to, apperr.ErrIO, err)
	}

	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("vault: rename %s -> %s: %w: %w", from, to, apperr.ErrIO, err)
	}
	return nil
}

// Mkdir creates the directory path and any missing parents.
func (l *Layer) Mkdir(path string) error {
	if strings.TrimSpace(path) == "" || strings.ContainsRune(path, 0) {
		return fmt.Errorf("vault: mkdir %q: %w: bad directory", path, apperr.ErrInvalidPath)
	}
	if err := os.MkdirAll(path, newDirMode); err != nil {
		return fmt.Errorf("vault: mkdir %s: %w: %w", path, apperr.ErrIO, err)
	}
	return nil
}

// validateName accepts a single path element.
func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", name == "..":
		return fmt.Errorf("vault: create %q: %w: bad file name", name, apperr.ErrInvalidPath)
	case strings.ContainsRune(name, 0), strings.ContainsAny(name, `/`+string(filepath.Separator)):
		return fmt.Errorf("vault: create %q: %w: name must not contain separators or NUL", name, apperr.ErrInvalidPath)
	}
	return nil
}
