// Package export re-serializes normalized questions as a machine-readable
// sidecar for external tooling (grading sheets, import into quiz engines).
// The payload is validated against an embedded JSON Schema before writing.
package export

import (
	"strings"

	"lectern/internal/doctree"
	"lectern/internal/mcq"
)

// Export is the sidecar document.
type Export struct {
	BuildID   string     `json:"build_id"`
	Questions []Question `json:"questions"`
}

// Question is one normalized question.
type Question struct {
	ID      string   `json:"id"`
	Source  string   `json:"source"`
	Prompt  string   `json:"prompt"`
	Answer  string   `json:"answer,omitempty"`
	Choices []Choice `json:"choices"`
}

// Choice is one answer option with its feedback text.
type Choice struct {
	Ordinal  string `json:"ordinal"`
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// Collect extracts every normalized question from a document, in document
// order.
func Collect(doc *doctree.Document) []Question {
	var questions []Question
	for _, node := range doctree.FindAll(doc, func(n doctree.Node) bool {
		_, ok := n.(*mcq.Question)
		return ok
	}) {
		question := node.(*mcq.Question)
		entry := Question{
			ID:     question.ID,
			Source: question.Attrs().Source,
			Prompt: strings.TrimSpace(question.PromptText()),
			Answer: question.Answer,
			// Never nil: the schema requires an array even when a question
			// has no recognizable choices.
			Choices: []Choice{},
		}
		for _, choiceNode := range doctree.FindAll(question, func(n doctree.Node) bool {
			_, ok := n.(*mcq.Choice)
			return ok
		}) {
			choice := choiceNode.(*mcq.Choice)
			entry.Choices = append(entry.Choices, Choice{
				Ordinal:  choice.Ordinal,
				Text:     strings.TrimSpace(choiceText(choice)),
				Correct:  choice.IsCorrect,
				Feedback: strings.TrimSpace(feedbackText(choice)),
			})
		}
		questions = append(questions, entry)
	}
	return questions
}

// choiceText returns the display text of a choice, excluding its feedback.
func choiceText(choice *mcq.Choice) string {
	var parts []string
	for _, child := range choice.Children() {
		if _, ok := child.(*mcq.Feedback); ok {
			continue
		}
		parts = append(parts, doctree.TextOf(child))
	}
	return strings.Join(parts, "\n")
}

func feedbackText(choice *mcq.Choice) string {
	for _, child := range choice.Children() {
		if feedback, ok := child.(*mcq.Feedback); ok {
			return doctree.TextOf(feedback)
		}
	}
	return ""
}
