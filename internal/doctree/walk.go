package doctree

import "strings"

// Visit walks the tree in depth-first document order, calling fn for every
// node below root with its immediate parent. Returning false skips the
// node's subtree.
func Visit(root Node, fn func(node, parent Node) bool) {
	visit(root, fn)
}

func visit(parent Node, fn func(node, parent Node) bool) {
	for _, child := range parent.Children() {
		if !fn(child, parent) {
			continue
		}
		visit(child, fn)
	}
}

// FindAll returns every node below root matching pred, in document order.
func FindAll(root Node, pred func(Node) bool) []Node {
	var matches []Node
	Visit(root, func(node, _ Node) bool {
		if pred(node) {
			matches = append(matches, node)
		}
		return true
	})
	return matches
}

// ReplaceChild swaps old for replacement among parent's children. It
// reports whether old was found.
func ReplaceChild(parent, old, replacement Node) bool {
	children := parent.Children()
	for i, child := range children {
		if child == old {
			children[i] = replacement
			parent.SetChildren(children)
			return true
		}
	}
	return false
}

// RemoveChild deletes old from parent's children. It reports whether old
// was found.
func RemoveChild(parent, old Node) bool {
	children := parent.Children()
	for i, child := range children {
		if child == old {
			parent.SetChildren(append(children[:i:i], children[i+1:]...))
			return true
		}
	}
	return false
}

// TextOf returns the concatenated literal text of a subtree.
func TextOf(root Node) string {
	var builder strings.Builder
	if text, ok := root.(*Text); ok {
		builder.WriteString(text.Value)
	}
	Visit(root, func(node, _ Node) bool {
		if text, ok := node.(*Text); ok {
			builder.WriteString(text.Value)
		}
		return true
	})
	return builder.String()
}

// CopyMeta copies all attributes from src onto dst. Used when promoting a
// generic node to a specialized one.
func CopyMeta(dst, src Node) {
	from := src.Attrs()
	to := dst.Attrs()
	to.Names = append(to.Names, from.Names...)
	to.Classes = append(to.Classes, from.Classes...)
	if to.Source == "" {
		to.Source = from.Source
	}
	if to.Line == 0 {
		to.Line = from.Line
	}
}
