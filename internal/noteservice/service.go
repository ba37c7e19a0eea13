// Package noteservice coordinates vault access, checksums, and rendering for
// the HTTP, MCP, and CLI bindings.
package noteservice

import (
	"context"
	"path/filepath"

	"github.com/starford/acropad/internal/checksum"
	"github.com/starford/acropad/internal/render"
	"github.com/starford/acropad/internal/vault"
)

// FileDetail is the full content of a single file.
type FileDetail struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Checksum string `json:"checksum"`
}

// SaveResult describes a completed save.
type SaveResult struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
}

// RenderedFile is a file rendered to HTML for preview.
type RenderedFile struct {
	Path        string         `json:"path"`
	HTML        string         `json:"html"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Links       []string       `json:"links"`
}

// CreatedNote describes a newly created note.
type CreatedNote struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Checksum string `json:"checksum"`
}

// RenameResult describes a completed rename.
type RenameResult struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Service exposes vault operations to bindings.
type Service struct {
	vault       vault.Provider
	renderer    *render.Renderer
	defaultRoot string
}

// NewService creates a new service. defaultRoot is used by Scan and Search
// when the caller passes an empty root.
func NewService(v vault.Provider, r *render.Renderer, defaultRoot string) *Service {
	return &Service{vault: v, renderer: r, defaultRoot: defaultRoot}
}

// Greet returns the liveness string of the vault layer.
func (s *Service) Greet() string {
	return vault.Greet()
}

// Root returns root, or the configured default when root is empty.
func (s *Service) Root(root string) string {
	if root == "" {
		return s.defaultRoot
	}
	return root
}

// Scan lists the notes under root in sorted order.
func (s *Service) Scan(ctx context.Context, root string) ([]string, error) {
	return s.vault.Scan(ctx, s.Root(root))
}

// Search returns the notes under root containing query, ignoring case.
func (s *Service) Search(ctx context.Context, root, query string) ([]string, error) {
	return s.vault.Search(ctx, s.Root(root), query)
}

// ReadFile reads a file and fingerprints its content.
func (s *Service) ReadFile(_ context.Context, path string) (*FileDetail, error) {
	content, err := s.vault.Read(path)
	if err != nil {
		return nil, err
	}
	return &FileDetail{Path: path, Content: content, Checksum: checksum.Sum(content)}, nil
}

// SaveFile overwrites a file with content.
func (s *Service) SaveFile(_ context.Context, path, content string) (*SaveResult, error) {
	if err := s.vault.Save(path, content); err != nil {
		return nil, err
	}
	return &SaveResult{Path: path, Checksum: checksum.Sum(content)}, nil
}

// RenderFile reads a file and renders it to HTML.
func (s *Service) RenderFile(_ context.Context, path string) (*RenderedFile, error) {
	content, err := s.vault.Read(path)
	if err != nil {
		return nil, err
	}
	res, err := s.renderer.Render(path, content)
	if err != nil {
		return nil, err
	}
	return &RenderedFile{
		Path:        path,
		HTML:        res.HTML,
		Frontmatter: res.Frontmatter,
		Links:       nonNilSlice(res.Links),
	}, nil
}

// CreateNote creates a note named name in dir, which defaults to the
// configured vault. An empty name picks an untitled one.
func (s *Service) CreateNote(_ context.Context, dir, name string) (*CreatedNote, error) {
	path, err := s.vault.Create(s.Root(dir), name)
	if err != nil {
		return nil, err
	}
	return &CreatedNote{
		Path:     path,
		Name:     filepath.Base(path),
		Checksum: checksum.Sum(vault.NewNoteContent),
	}, nil
}

// DeleteFile removes a file.
func (s *Service) DeleteFile(_ context.Context, path string) error {
	return s.vault.Delete(path)
}

// RenameFile moves a file without overwriting an existing one.
func (s *Service) RenameFile(_ context.Context, from, to string) (*RenameResult, error) {
	if err := s.vault.Rename(from, to); err != nil {
		return nil, err
	}
	return &RenameResult{From: from, To: to}, nil
}

// MakeDir creates a directory with its parents.
func (s *Service) MakeDir(_ context.Context, path string) error {
	return s.vault.Mkdir(path)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
