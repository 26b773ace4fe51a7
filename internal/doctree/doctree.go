// Package doctree defines the generic document tree produced by the page
// parser and rewritten by transform passes. Nodes are typed structs sharing
// an embedded Base; consumers dispatch with type switches.
package doctree

// Meta carries the attributes common to every node: registered names,
// style classes, and the source position the node was parsed from.
type Meta struct {
	Names   []string
	Classes []string
	Source  string
	Line    int
}

// Node is implemented by every document tree node.
type Node interface {
	Attrs() *Meta
	Children() []Node
	SetChildren([]Node)
}

// Base provides child storage and attributes for node variants.
type Base struct {
	meta     Meta
	children []Node
}

// Attrs returns the node's mutable attribute set.
func (b *Base) Attrs() *Meta { return &b.meta }

// Children returns the node's ordered child sequence.
func (b *Base) Children() []Node { return b.children }

// SetChildren replaces the node's child sequence.
func (b *Base) SetChildren(children []Node) { b.children = children }

// Append adds nodes to the end of the child sequence.
func (b *Base) Append(nodes ...Node) { b.children = append(b.children, nodes...) }

// Document is the root of one parsed page.
type Document struct {
	Base
}

// Section is a heading line. Sections are flat markers, not containers.
type Section struct {
	Base
	Title string
	Level int
}

// Paragraph holds a run of inline content.
type Paragraph struct {
	Base
}

// Text is a leaf carrying literal text.
type Text struct {
	Base
	Value string
}

// Emphasis wraps inline content rendered with emphasis.
type Emphasis struct {
	Base
}

// Strong wraps inline content rendered with strong emphasis.
type Strong struct {
	Base
}

// Literal wraps inline content rendered verbatim.
type Literal struct {
	Base
}

// EnumType identifies the enumeration style of an ordered list.
type EnumType int

const (
	EnumArabic EnumType = iota
	EnumLowerAlpha
	EnumUpperAlpha
)

func (e EnumType) String() string {
	switch e {
	case EnumArabic:
		return "arabic"
	case EnumLowerAlpha:
		return "loweralpha"
	case EnumUpperAlpha:
		return "upperalpha"
	default:
		return "unknown"
	}
}

// EnumeratedList is an ordered list. Enum records the authored marker
// style; upper-alphabetic lists mark answer choices for the mcq directive.
type EnumeratedList struct {
	Base
	Enum EnumType
}

// BulletList is an unordered list.
type BulletList struct {
	Base
}

// ListItem is one entry of an enumerated or bullet list.
type ListItem struct {
	Base
}

// FieldList groups consecutive field annotations.
type FieldList struct {
	Base
}

// Field is one labelled annotation; its children are the field body.
type Field struct {
	Base
	Label string
}

// NewText builds a text leaf.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// NewParagraph builds a paragraph wrapping the given inline nodes.
func NewParagraph(inline ...Node) *Paragraph {
	p := &Paragraph{}
	p.Append(inline...)
	return p
}
