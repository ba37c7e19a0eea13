package vault

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/starford/acropad/internal/apperr"
)

// Scan walks root and returns the relative paths of all note files, sorted
// ascending. A nonexistent root is an empty vault, not an error.
func (l *Layer) Scan(ctx context.Context, root string) ([]string, error) {
	ok, err := rootExists(root)
	if err != nil {
		return nil, fmt.Errorf("vault: scan %s: %w: %w", root, apperr.ErrIO, err)
	}
	files := []string{}
	if !ok {
		return files, nil
	}
	for n, err := range l.notes(ctx, root) {
		if err != nil {
			return nil, err
		}
		files = append(files, n.rel)
	}
	slices.Sort(files)
	return files, nil
}

// Search walks root like Scan and returns the relative paths of notes whose
// content contains query, compared in lower case. Results keep walk order.
// Notes that cannot be read as UTF-8 text are skipped.
func (l *Layer) Search(ctx context.Context, root, query string) ([]string, error) {
	ok, err := rootExists(root)
	if err != nil {
		return nil, fmt.Errorf("vault: search %s: %w: %w", root, apperr.ErrIO, err)
	}
	matches := []string{}
	if !ok {
		return matches, nil
	}
	needle := strings.ToLower(query)
	for n, err := range l.notes(ctx, root) {
		if err != nil {
			return nil, err
		}
		content, err := l.Read(n.abs)
		if err != nil {
			l.logger.Debug("vault: search skip", slog.String("path", n.rel), slog.String("error", err.Error()))
			continue
		}
		if strings.Contains(strings.ToLower(content), needle) {
			matches = append(matches, n.rel)
		}
	}
	return matches, nil
}
