// Package writer renders canonical document trees to HTML. The mapping is
// attribute driven: question ids, classes, ordinals, and correctness come
// straight off the nodes, with no further tree rewriting.
package writer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"lectern/internal/doctree"
	"lectern/internal/mcq"
)

// Page builds a full HTML page component for one document.
func Page(title string, doc *doctree.Document, assetsBase string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.printf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		hw.printf("<meta charset=\"utf-8\">\n")
		hw.printf("<title>%s</title>\n", templ.EscapeString(title))
		hw.printf("<link rel=\"stylesheet\" href=\"%s\">\n", templ.EscapeString(AssetURL(assetsBase, StylesheetName)))
		hw.printf("</head>\n<body>\n")
		for _, child := range doc.Children() {
			writeNode(hw, child)
		}
		hw.printf("<script src=\"%s\"></script>\n", templ.EscapeString(AssetURL(assetsBase, ScriptName)))
		hw.printf("</body>\n</html>\n")
		return hw.err
	})
}

// Fragment builds a component for a node sequence without the page shell.
func Fragment(nodes ...doctree.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		for _, node := range nodes {
			writeNode(hw, node)
		}
		return hw.err
	})
}

// RenderPage renders a page component into a string.
func RenderPage(ctx context.Context, title string, doc *doctree.Document, assetsBase string) (string, error) {
	var builder strings.Builder
	if err := Page(title, doc, assetsBase).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// htmlWriter tracks the first write error so render code stays linear.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

func writeNode(hw *htmlWriter, node doctree.Node) {
	switch typed := node.(type) {
	case *doctree.Section:
		level := typed.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		hw.printf("<h%d>%s</h%d>\n", level, templ.EscapeString(typed.Title), level)
	case *doctree.Paragraph:
		hw.printf("<p>")
		writeChildren(hw, typed)
		hw.printf("</p>\n")
	case *doctree.Text:
		hw.printf("%s", templ.EscapeString(typed.Value))
	case *doctree.Emphasis:
		hw.printf("<em>")
		writeChildren(hw, typed)
		hw.printf("</em>")
	case *doctree.Strong:
		hw.printf("<strong>")
		writeChildren(hw, typed)
		hw.printf("</strong>")
	case *doctree.Literal:
		hw.printf("<code>")
		writeChildren(hw, typed)
		hw.printf("</code>")
	case *doctree.BulletList:
		hw.printf("<ul>\n")
		writeChildren(hw, typed)
		hw.printf("</ul>\n")
	case *doctree.EnumeratedList:
		hw.printf("<ol type=\"%s\">\n", listType(typed.Enum))
		writeChildren(hw, typed)
		hw.printf("</ol>\n")
	case *doctree.ListItem:
		hw.printf("<li>")
		writeChildren(hw, typed)
		hw.printf("</li>\n")
	case *doctree.FieldList:
		hw.printf("<dl class=\"field-list\">\n")
		writeChildren(hw, typed)
		hw.printf("</dl>\n")
	case *doctree.Field:
		hw.printf("<dt>%s</dt>\n<dd>", templ.EscapeString(typed.Label))
		writeChildren(hw, typed)
		hw.printf("</dd>\n")
	case *mcq.Question:
		hw.printf("<div id=\"%s\" class=\"%s\">\n", templ.EscapeString(typed.ID), templ.EscapeString(questionClasses(typed)))
		writeChildren(hw, typed)
		hw.printf("</div>\n")
	case *mcq.Body:
		hw.printf("<div class=\"mcq-inner\">\n")
		writeChildren(hw, typed)
		hw.printf("</div>\n")
	case *mcq.ChoicesList:
		hw.printf("<ol class=\"mcq-choices\" type=\"A\">\n")
		writeChildren(hw, typed)
		hw.printf("</ol>\n")
	case *mcq.Choice:
		hw.printf("<li class=\"mcq-choice\" data-question=\"%s\" data-ordinal=\"%s\" data-correct=\"%t\">\n",
			templ.EscapeString(typed.QuestionID), templ.EscapeString(typed.Ordinal), typed.IsCorrect)
		writeChildren(hw, typed)
		hw.printf("</li>\n")
	case *mcq.Feedback:
		hw.printf("<div class=\"mcq-feedback %s\" hidden>", feedbackClass(typed))
		writeChildren(hw, typed)
		hw.printf("</div>\n")
	default:
		// Unknown container: render its children so content is never lost.
		writeChildren(hw, node)
	}
}

func writeChildren(hw *htmlWriter, node doctree.Node) {
	for _, child := range node.Children() {
		writeNode(hw, child)
	}
}

func questionClasses(question *mcq.Question) string {
	return strings.Join(append([]string{"mcq"}, question.Attrs().Classes...), " ")
}

func feedbackClass(feedback *mcq.Feedback) string {
	if feedback.IsCorrect {
		return "mcq-feedback-correct"
	}
	return "mcq-feedback-incorrect"
}

func listType(enum doctree.EnumType) string {
	switch enum {
	case doctree.EnumUpperAlpha:
		return "A"
	case doctree.EnumLowerAlpha:
		return "a"
	default:
		return "1"
	}
}
