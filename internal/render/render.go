// Package render turns note text into HTML for preview: YAML frontmatter is
// split off, [[wikilinks]] become internal links, and the markdown body is
// rendered with goldmark. Plain-text notes are escaped into a <pre> block.
package render

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Result holds the output of rendering a note.
type Result struct {
	HTML        string         `json:"html"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Links       []string       `json:"links,omitempty"`
}

// Renderer renders notes. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with GitHub-flavoured markdown enabled. Raw HTML in
// notes is passed through.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer, wikilinks{}),
			goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
		),
	}
}

// Render renders content according to the extension of name. Files with a
// "txt" extension are treated as plain text; everything else as markdown.
func (r *Renderer) Render(name, content string) (*Result, error) {
	if strings.EqualFold(filepath.Ext(name), ".txt") {
		return &Result{HTML: "<pre>" + html.EscapeString(content) + "</pre>\n"}, nil
	}
	return r.Markdown(content)
}

// Markdown renders a markdown note.
func (r *Renderer) Markdown(content string) (*Result, error) {
	fm, body := splitFrontmatter(content)
	src := []byte(body)
	doc := r.md.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("render: convert: %w", err)
	}
	return &Result{HTML: buf.String(), Frontmatter: fm, Links: collectLinks(doc)}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- lines)
// from the body. Missing or invalid frontmatter leaves the content untouched.
func splitFrontmatter(content string) (map[string]any, string) {
	const delim = "---"
	trimmed := strings.TrimLeft(content, "\r\n")
	if !strings.HasPrefix(trimmed, delim) {
		return nil, content
	}

	rest := trimmed[len(delim):]
	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		return nil, content
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(rest[:idx]), &fm); err != nil {
		return nil, content
	}
	body := strings.TrimLeft(rest[idx+1+len(delim):], "\r\n")
	return fm, body
}
