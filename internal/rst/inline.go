package rst

import (
	"strings"

	"lectern/internal/doctree"
)

// inlineSpan describes one inline markup delimiter and the node it yields.
type inlineSpan struct {
	open  string
	close string
	wrap  func(text string) doctree.Node
}

// Order matters: longer delimiters first so ** is not read as two *.
var inlineSpans = []inlineSpan{
	{"``", "``", func(text string) doctree.Node {
		node := &doctree.Literal{}
		node.Append(doctree.NewText(text))
		return node
	}},
	{"**", "**", func(text string) doctree.Node {
		node := &doctree.Strong{}
		node.Append(doctree.NewText(text))
		return node
	}},
	{"*", "*", func(text string) doctree.Node {
		node := &doctree.Emphasis{}
		node.Append(doctree.NewText(text))
		return node
	}},
}

// ParseInline parses a text run into inline nodes. Markup is flat: spans
// do not nest, and unclosed delimiters fall back to literal text.
func (p *Parser) ParseInline(text string) []doctree.Node {
	var nodes []doctree.Node
	plain := strings.Builder{}
	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, doctree.NewText(plain.String()))
			plain.Reset()
		}
	}

	for len(text) > 0 {
		span, start := earliestSpan(text)
		if span == nil {
			plain.WriteString(text)
			break
		}
		inner := text[start+len(span.open):]
		end := strings.Index(inner, span.close)
		if end <= 0 {
			// No closing delimiter (or empty span): keep one literal rune
			// and rescan.
			plain.WriteString(text[:start+1])
			text = text[start+1:]
			continue
		}
		plain.WriteString(text[:start])
		flush()
		nodes = append(nodes, span.wrap(inner[:end]))
		text = inner[end+len(span.close):]
	}
	flush()
	return nodes
}

// earliestSpan finds the first opening delimiter in text, preferring the
// longest delimiter at a given position.
func earliestSpan(text string) (*inlineSpan, int) {
	bestIndex := -1
	var best *inlineSpan
	for i := range inlineSpans {
		span := &inlineSpans[i]
		index := strings.Index(text, span.open)
		if index == -1 {
			continue
		}
		if bestIndex == -1 || index < bestIndex {
			bestIndex = index
			best = span
		}
	}
	return best, bestIndex
}
