package mcq

import (
	"strings"

	"lectern/internal/doctree"
	"lectern/internal/transform"
)

const (
	choicesPriority  = 200
	feedbackPriority = 201
)

const ordinalLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Transforms returns the normalization passes in registration order.
// ChoicesTransform must complete document-wide before FeedbackTransform
// runs; the priorities enforce that.
func Transforms() []transform.Transform {
	return []transform.Transform{ChoicesTransform{}, FeedbackTransform{}}
}

// ChoicesTransform rewrites every upper-alphabetic enumerated list inside a
// question into a ChoicesList of Choice nodes. Ordinal letters are assigned
// strictly by position, ignoring the authored labels.
type ChoicesTransform struct{}

func (ChoicesTransform) Name() string  { return "mcq-choices" }
func (ChoicesTransform) Priority() int { return choicesPriority }

func (ChoicesTransform) Apply(ctx *transform.Context) {
	for _, node := range doctree.FindAll(ctx.Document, isQuestion) {
		question := node.(*Question)
		lists := alphabeticLists(question)

		if len(lists) == 0 {
			if len(doctree.FindAll(question, isChoicesList)) == 0 {
				attrs := question.Attrs()
				ctx.Warnf(attrs.Source, attrs.Line, "mcq %q (%s) has no upper-alphabetic answer list", question.PromptText(), question.ID)
			}
			continue
		}
		if len(lists) > 1 {
			attrs := question.Attrs()
			ctx.Warnf(attrs.Source, attrs.Line, "mcq %q (%s) has %d upper-alphabetic lists; each becomes its own choices list", question.PromptText(), question.ID, len(lists))
		}

		matched := false
		for _, found := range lists {
			choices := &ChoicesList{}
			doctree.CopyMeta(choices, found.list)
			for i, itemNode := range found.list.Children() {
				if i >= len(ordinalLetters) {
					attrs := question.Attrs()
					ctx.Warnf(attrs.Source, attrs.Line, "mcq %q (%s) has more than %d choices; extra items kept unlabelled", question.PromptText(), question.ID, len(ordinalLetters))
					choices.Append(found.list.Children()[i:]...)
					break
				}
				ordinal := string(ordinalLetters[i])
				choice := &Choice{
					QuestionID: question.ID,
					Ordinal:    ordinal,
					IsCorrect:  ordinal == question.Answer,
				}
				choice.SetChildren(itemNode.Children())
				doctree.CopyMeta(choice, itemNode)
				if choice.IsCorrect {
					matched = true
				}
				choices.Append(choice)
			}
			doctree.ReplaceChild(found.parent, found.list, choices)
		}

		if question.Answer != "" && !matched {
			attrs := question.Attrs()
			ctx.Warnf(attrs.Source, attrs.Line, "mcq %q (%s): answer %q matches no choice ordinal", question.PromptText(), question.ID, question.Answer)
		}
	}
}

// FeedbackTransform gives every choice exactly one trailing Feedback node,
// built from the choice's first "feedback" field annotation or left empty.
type FeedbackTransform struct{}

func (FeedbackTransform) Name() string  { return "mcq-feedback" }
func (FeedbackTransform) Priority() int { return feedbackPriority }

func (FeedbackTransform) Apply(ctx *transform.Context) {
	for _, node := range doctree.FindAll(ctx.Document, isChoice) {
		choice := node.(*Choice)
		if hasFeedback(choice) {
			continue
		}

		var content []doctree.Node
		if field, fieldList, listParent := findFeedbackField(choice); field != nil {
			content = unwrapFieldBody(field)
			doctree.RemoveChild(listParent, fieldList)
		}

		feedback := &Feedback{IsCorrect: choice.IsCorrect}
		feedback.Append(doctree.NewParagraph(content...))
		choice.Append(feedback)
	}
}

type locatedList struct {
	list   *doctree.EnumeratedList
	parent doctree.Node
}

// alphabeticLists finds the question's upper-alphabetic enumerated lists in
// document order, with their parents so they can be replaced in place.
func alphabeticLists(question *Question) []locatedList {
	var lists []locatedList
	doctree.Visit(question, func(node, parent doctree.Node) bool {
		if list, ok := node.(*doctree.EnumeratedList); ok && list.Enum == doctree.EnumUpperAlpha {
			lists = append(lists, locatedList{list: list, parent: parent})
			return false
		}
		return true
	})
	return lists
}

// findFeedbackField locates the choice's first field labelled "feedback"
// (case-insensitive, trimmed), the field list containing it, and that
// list's parent.
func findFeedbackField(choice *Choice) (*doctree.Field, doctree.Node, doctree.Node) {
	parents := map[doctree.Node]doctree.Node{}
	var field *doctree.Field
	doctree.Visit(choice, func(node, parent doctree.Node) bool {
		if field != nil {
			return false
		}
		parents[node] = parent
		if f, ok := node.(*doctree.Field); ok && isFeedbackLabel(f.Label) {
			field = f
			return false
		}
		return true
	})
	if field == nil {
		return nil, nil, nil
	}
	fieldList := parents[field]
	if _, ok := fieldList.(*doctree.FieldList); !ok {
		// Field outside a field list: remove just the field.
		return field, field, fieldList
	}
	return field, fieldList, parents[fieldList]
}

// unwrapFieldBody returns a field's body content, unwrapping a lone
// paragraph so the feedback node does not double-wrap it.
func unwrapFieldBody(field *doctree.Field) []doctree.Node {
	children := field.Children()
	if len(children) == 1 {
		if paragraph, ok := children[0].(*doctree.Paragraph); ok {
			return paragraph.Children()
		}
	}
	return children
}

func isFeedbackLabel(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), "feedback")
}

func hasFeedback(choice *Choice) bool {
	for _, child := range choice.Children() {
		if _, ok := child.(*Feedback); ok {
			return true
		}
	}
	return false
}

func isQuestion(node doctree.Node) bool {
	_, ok := node.(*Question)
	return ok
}

func isChoice(node doctree.Node) bool {
	_, ok := node.(*Choice)
	return ok
}

func isChoicesList(node doctree.Node) bool {
	_, ok := node.(*ChoicesList)
	return ok
}
