// Package vault implements stateless access to a vault: a directory tree of
// markdown and plain-text notes. Every call re-reads the filesystem; nothing
// is cached between calls.
package vault

import "context"

// Provider is the set of vault operations exposed to bindings.
type Provider interface {
	// Scan returns the sorted relative paths of every note under root.
	Scan(ctx context.Context, root string) ([]string, error)
	// Read returns the full UTF-8 text of the file at path.
	Read(path string) (string, error)
	// Save replaces the content of the file at path, creating it if absent.
	Save(path, content string) error
	// Search returns the relative paths of notes under root whose content
	// contains query, ignoring case.
	Search(ctx context.Context, root, query string) ([]string, error)

	// Create writes a new note in dir and returns its path.
	Create(dir, name string) (string, error)
	// Delete removes a single file.
	Delete(path string) error
	// Rename moves from to to without replacing an existing entry.
	Rename(from, to string) error
	// Mkdir creates a directory and its missing parents.
	Mkdir(path string) error
}

var _ Provider = (*Layer)(nil)
