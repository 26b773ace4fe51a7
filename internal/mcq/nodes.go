// Package mcq implements the multiple-choice question directive: the
// canonical node schema, the directive parser, and the normalization
// passes that rewrite authored list markup into canonical choice nodes.
package mcq

import "lectern/internal/doctree"

// Question is the root node of one multiple-choice question.
//
// The canonical shape after normalization:
//
//	Question
//	└── Body
//	    ├── prompt paragraph
//	    ├── additional content ...
//	    └── ChoicesList
//	        └── Choice
//	            ├── display content ...
//	            └── Feedback
type Question struct {
	doctree.Base
	ID     string
	Answer string

	// RawContent keeps the authored body text as a plain-text fallback.
	RawContent string
}

// PromptText returns the plain text of the question prompt, used in
// diagnostics. Empty if the question has no body yet.
func (q *Question) PromptText() string {
	children := q.Children()
	if len(children) == 0 {
		return ""
	}
	body := children[0].Children()
	if len(body) == 0 {
		return ""
	}
	return doctree.TextOf(body[0])
}

// Body holds the prompt paragraph followed by explanatory content and, after
// normalization, the choices list.
type Body struct {
	doctree.Base
}

// ChoicesList is the ordered container of choices. Child order defines the
// ordinal letter assignment.
type ChoicesList struct {
	doctree.Base
}

// Choice is one answer option. QuestionID is a non-owning back-reference to
// the enclosing question.
type Choice struct {
	doctree.Base
	QuestionID string
	Ordinal    string
	IsCorrect  bool
}

// Feedback explains why a choice is right or wrong. IsCorrect mirrors the
// owning choice so writers need not climb the tree.
type Feedback struct {
	doctree.Base
	IsCorrect bool
}
