package vault

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// entry is a note file found during traversal.
type entry struct {
	abs string // path as produced by the walk
	rel string // path relative to the walked root
}

// rootExists reports whether root names an existing filesystem entry.
// Only failures other than "does not exist" are returned as errors.
func rootExists(root string) (bool, error) {
	_, err := os.Stat(root)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return false, nil
	default:
		return false, err
	}
}

// notes yields every note file under root in lexical walk order. Entries
// that cannot be inspected are skipped. The only error ever yielded is the
// context's, after which iteration stops.
func (l *Layer) notes(ctx context.Context, root string) iter.Seq2[entry, error] {
	return func(yield func(entry, error) bool) {
		// A symlinked root is followed; links below it are not descended.
		base := root
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			base = resolved
		}

		_ = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				yield(entry{}, err)
				return filepath.SkipAll
			}
			if walkErr != nil {
				l.logger.Debug("vault: skip entry",
					slog.String("path", p),
					slog.String("error", walkErr.Error()))
				return nil
			}
			name := d.Name()
			if p == base && !d.IsDir() {
				// A file root is matched by the name the caller gave.
				name = filepath.Base(root)
			}
			if !l.isNote(p, name, d) {
				return nil
			}
			rel, err := filepath.Rel(base, p)
			if err != nil {
				return nil
			}
			if !yield(entry{abs: p, rel: rel}, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// isNote reports whether the walked entry is a regular file (directly or
// through a symlink) whose name has an allowed extension.
func (l *Layer) isNote(p, name string, d fs.DirEntry) bool {
	if !l.allowed(name) {
		return false
	}
	t := d.Type()
	if t.IsRegular() {
		return true
	}
	if t&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	if err != nil {
		l.logger.Debug("vault: skip dangling link", slog.String("path", p), slog.String("error", err.Error()))
		return false
	}
	return info.Mode().IsRegular()
}

func (l *Layer) allowed(name string) bool {
	ext, ok := extension(name)
	if !ok {
		return false
	}
	ext = strings.ToLower(strings.ToValidUTF8(ext, "�"))
	_, ok = l.exts[ext]
	return ok
}

// extension returns the text after the final dot of name. A name whose only
// dot is its first byte (".md") has no extension.
func extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return "", false
	}
	return name[i+1:], true
}
