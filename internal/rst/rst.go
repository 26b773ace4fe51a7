// Package rst parses the lightweight reStructuredText-style page format
// into a generic document tree. Block structure is line based: paragraphs,
// underlined titles, bullet and enumerated lists, field lists, and
// directives. Inline markup is limited to emphasis, strong, and literals.
package rst

import (
	"strings"

	"lectern/internal/doctree"
)

// Reporter receives non-fatal parse diagnostics.
type Reporter interface {
	Warnf(source string, line int, format string, args ...any)
}

// Directive is one authored directive block, options split out and body
// lines dedented.
type Directive struct {
	Name        string
	Arg         string
	Options     map[string]string
	Content     []string
	Source      string
	Line        int
	ContentLine int
}

// HasFlag reports whether an option key was supplied at all, regardless
// of value.
func (d Directive) HasFlag(key string) bool {
	_, ok := d.Options[key]
	return ok
}

// DirectiveFunc builds document nodes for one directive block. The parser
// is passed back in so directives can nested-parse their body content.
type DirectiveFunc func(d Directive, p *Parser) ([]doctree.Node, error)

// Options configures a Parser.
type Options struct {
	Directives map[string]DirectiveFunc
	Reporter   Reporter
}

// Parser turns page text into a document tree.
type Parser struct {
	directives map[string]DirectiveFunc
	reporter   Reporter
}

// New creates a parser with the given directive registry.
func New(opts Options) *Parser {
	directives := opts.Directives
	if directives == nil {
		directives = map[string]DirectiveFunc{}
	}
	return &Parser{directives: directives, reporter: opts.Reporter}
}

// ParseDocument parses one page into a document tree. Parse problems are
// reported as warnings, never as errors; the worst outcome is a page with
// degraded content.
func (p *Parser) ParseDocument(source, text string) *doctree.Document {
	doc := &doctree.Document{}
	doc.Attrs().Source = source
	doc.Attrs().Line = 1
	doc.SetChildren(p.ParseBlocks(splitLines(text), source, 1))
	return doc
}

// ParseBlocks parses dedented block lines beginning at the given 1-based
// source line. It is the nested-parse primitive handed to directives.
func (p *Parser) ParseBlocks(lines []string, source string, startLine int) []doctree.Node {
	return p.parseBlocks(lines, source, startLine)
}

func (p *Parser) warnf(source string, line int, format string, args ...any) {
	if p.reporter != nil {
		p.reporter.Warnf(source, line, format, args...)
	}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}
