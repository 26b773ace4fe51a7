package mcq

import (
	"fmt"
	"strings"

	"lectern/internal/doctree"
	"lectern/internal/rst"
)

// DirectiveName is the author-facing name of the directive.
const DirectiveName = "mcq"

// Env is the per-build session state the directive consumes: the running
// question counter and the document-wide name registry. A fresh Env is
// created for every build, so counters never leak between builds.
type Env interface {
	NextQuestionIndex() int
	RegisterName(name, source string, line int)
}

// NewDirective binds the mcq directive to a build session.
//
// The directive takes one whitespace-preserving argument (the prompt),
// options answer, class, name, numbered, and show_feedback, and a nested
// body. It yields exactly one Question whose body starts with the prompt
// paragraph. The answer choices are still a generic enumerated list at
// this point; the transform passes rewrite them later.
func NewDirective(env Env) rst.DirectiveFunc {
	return func(d rst.Directive, p *rst.Parser) ([]doctree.Node, error) {
		index := env.NextQuestionIndex()
		name := strings.TrimSpace(d.Options["name"])
		if name == "" {
			name = fmt.Sprintf("mcq-%d", index)
		}

		question := &Question{
			ID:         name,
			Answer:     strings.TrimSpace(d.Options["answer"]),
			RawContent: strings.Join(d.Content, "\n"),
		}
		attrs := question.Attrs()
		attrs.Source = d.Source
		attrs.Line = d.Line
		attrs.Names = append(attrs.Names, name)
		attrs.Classes = strings.Fields(d.Options["class"])
		if d.HasFlag("numbered") {
			attrs.Classes = append(attrs.Classes, "numbered")
		}
		if d.HasFlag("show_feedback") {
			attrs.Classes = append(attrs.Classes, "show-feedback")
		}

		prompt := doctree.NewParagraph(p.ParseInline(d.Arg)...)
		prompt.Attrs().Source = d.Source
		prompt.Attrs().Line = d.Line

		body := &Body{}
		body.Attrs().Source = d.Source
		body.Attrs().Line = d.Line
		body.Append(prompt)
		body.Append(p.ParseBlocks(d.Content, d.Source, d.ContentLine)...)

		question.Append(body)
		env.RegisterName(name, d.Source, d.Line)
		return []doctree.Node{question}, nil
	}
}
