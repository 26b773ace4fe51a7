// Package transform schedules document rewrite passes. Passes run in
// ascending priority order, and each pass completes over the whole
// document before the next starts.
package transform

import (
	"sort"

	"lectern/internal/doctree"
)

// Reporter receives non-fatal diagnostics from transform passes.
type Reporter interface {
	Warnf(source string, line int, format string, args ...any)
}

// Context carries the document under rewrite and the diagnostic sink.
type Context struct {
	Document *doctree.Document
	Reporter Reporter
}

// Warnf forwards a warning to the context's reporter, if any.
func (c *Context) Warnf(source string, line int, format string, args ...any) {
	if c.Reporter != nil {
		c.Reporter.Warnf(source, line, format, args...)
	}
}

// Transform is one whole-document rewrite pass.
type Transform interface {
	Name() string
	Priority() int
	Apply(ctx *Context)
}

// Pipeline holds registered transforms and runs them in priority order.
type Pipeline struct {
	transforms []Transform
}

// Register adds a transform to the pipeline.
func (p *Pipeline) Register(transforms ...Transform) {
	p.transforms = append(p.transforms, transforms...)
}

// Run applies every registered transform to the document, lowest priority
// first. Registration order breaks priority ties.
func (p *Pipeline) Run(ctx *Context) {
	ordered := make([]Transform, len(p.transforms))
	copy(ordered, p.transforms)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})
	for _, t := range ordered {
		t.Apply(ctx)
	}
}
