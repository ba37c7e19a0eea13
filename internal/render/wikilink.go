package render

import (
	"bytes"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindWikilink is the node kind of a [[target|label]] link.
var KindWikilink = ast.NewNodeKind("Wikilink")

// Wikilink is an inline link to another note in the vault.
type Wikilink struct {
	ast.BaseInline
	Target string
	Label  string
}

// Kind implements ast.Node.
func (n *Wikilink) Kind() ast.NodeKind {
	return KindWikilink
}

// Dump implements ast.Node.
func (n *Wikilink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Target": n.Target,
		"Label":  n.Label,
	}, nil)
}

var (
	wikiOpen  = []byte("[[")
	wikiClose = []byte("]]")
)

type wikilinkParser struct{}

func (wikilinkParser) Trigger() []byte {
	return []byte{'['}
}

// Parse consumes [[target]] or [[target|label]] on the current line. Anything
// else is left to the regular link parser.
func (wikilinkParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, wikiOpen) {
		return nil
	}
	end := bytes.Index(line[len(wikiOpen):], wikiClose)
	if end < 0 {
		return nil
	}
	inner := line[len(wikiOpen) : len(wikiOpen)+end]
	if bytes.ContainsAny(inner, "[]") {
		return nil
	}

	target, label, _ := bytes.Cut(inner, []byte{'|'})
	target = bytes.TrimSpace(target)
	label = bytes.TrimSpace(label)
	if len(target) == 0 {
		return nil
	}
	if len(label) == 0 {
		label = target
	}

	block.Advance(len(wikiOpen) + end + len(wikiClose))
	return &Wikilink{Target: string(target), Label: string(label)}
}

type wikilinkRenderer struct{}

func (wikilinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindWikilink, renderWikilink)
}

func renderWikilink(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	link := n.(*Wikilink)
	_, _ = w.WriteString(`<a class="internal-link" href="#note/`)
	_, _ = w.Write(util.EscapeHTML([]byte(url.PathEscape(link.Target))))
	_, _ = w.WriteString(`">`)
	_, _ = w.Write(util.EscapeHTML([]byte(link.Label)))
	_, _ = w.WriteString("</a>")
	return ast.WalkSkipChildren, nil
}

// wikilinks is a goldmark extension adding [[wikilink]] syntax. It runs
// ahead of the link parser, so "[[" never starts a regular link.
type wikilinks struct{}

func (wikilinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(wikilinkParser{}, 199),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(wikilinkRenderer{}, 500),
	))
}

// collectLinks returns the distinct wikilink targets of doc in order of
// appearance.
func collectLinks(doc ast.Node) []string {
	seen := make(map[string]struct{})
	var links []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != KindWikilink {
			return ast.WalkContinue, nil
		}
		target := n.(*Wikilink).Target
		if _, ok := seen[target]; !ok {
			seen[target] = struct{}{}
			links = append(links, target)
		}
		return ast.WalkSkipChildren, nil
	})
	return links
}
