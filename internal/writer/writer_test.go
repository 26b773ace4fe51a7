package writer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lectern/internal/doctree"
	"lectern/internal/mcq"
)

func renderFragment(t *testing.T, nodes ...doctree.Node) string {
	t.Helper()
	var builder strings.Builder
	if err := Fragment(nodes...).Render(context.Background(), &builder); err != nil {
		t.Fatalf("render: %v", err)
	}
	return builder.String()
}

// TestRenderPageShell verifies the page wraps content with the asset links.
func TestRenderPageShell(t *testing.T) {
	doc := &doctree.Document{}
	doc.Append(&doctree.Section{Title: "Intro", Level: 1})
	html, err := RenderPage(context.Background(), "My <Site>", doc, "assets")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<title>My &lt;Site&gt;</title>") {
		t.Fatalf("expected escaped title, got %s", html)
	}
	if !strings.Contains(html, "<h1>Intro</h1>") {
		t.Fatalf("expected heading, got %s", html)
	}
	if !strings.Contains(html, `href="assets/`+StylesheetName+`"`) {
		t.Fatalf("expected stylesheet link, got %s", html)
	}
	if !strings.Contains(html, `src="assets/`+ScriptName+`"`) {
		t.Fatalf("expected script tag, got %s", html)
	}
}

// TestRenderInlineMarkup verifies inline nodes and text escaping.
func TestRenderInlineMarkup(t *testing.T) {
	strong := &doctree.Strong{}
	strong.Append(doctree.NewText("bold"))
	paragraph := doctree.NewParagraph(doctree.NewText("a < b, "), strong)
	html := renderFragment(t, paragraph)
	want := "<p>a &lt; b, <strong>bold</strong></p>\n"
	if html != want {
		t.Fatalf("expected %q, got %q", want, html)
	}
}

// TestRenderLists verifies list type attributes follow the enumeration
// style.
func TestRenderLists(t *testing.T) {
	list := &doctree.EnumeratedList{Enum: doctree.EnumLowerAlpha}
	item := &doctree.ListItem{}
	item.Append(doctree.NewText("x"))
	list.Append(item)
	html := renderFragment(t, list)
	if !strings.Contains(html, `<ol type="a">`) {
		t.Fatalf("expected loweralpha list, got %s", html)
	}
	if !strings.Contains(html, "<li>x</li>") {
		t.Fatalf("expected list item, got %s", html)
	}
}

// TestRenderQuestion verifies question markup carries the id, classes, and
// per-choice data attributes the script relies on.
func TestRenderQuestion(t *testing.T) {
	question := &mcq.Question{ID: "arith-1", Answer: "B"}
	question.Attrs().Classes = []string{"numbered"}
	body := &mcq.Body{}
	body.Append(doctree.NewParagraph(doctree.NewText("What is 2 + 2?")))
	choices := &mcq.ChoicesList{}
	choice := &mcq.Choice{QuestionID: "arith-1", Ordinal: "B", IsCorrect: true}
	choice.Append(doctree.NewParagraph(doctree.NewText("4")))
	feedback := &mcq.Feedback{IsCorrect: true}
	feedback.Append(doctree.NewParagraph(doctree.NewText("Correct!")))
	choice.Append(feedback)
	choices.Append(choice)
	body.Append(choices)
	question.Append(body)

	html := renderFragment(t, question)
	if !strings.Contains(html, `<div id="arith-1" class="mcq numbered">`) {
		t.Fatalf("expected question container, got %s", html)
	}
	if !strings.Contains(html, `<ol class="mcq-choices" type="A">`) {
		t.Fatalf("expected choices list, got %s", html)
	}
	if !strings.Contains(html, `data-question="arith-1" data-ordinal="B" data-correct="true"`) {
		t.Fatalf("expected choice data attributes, got %s", html)
	}
	if !strings.Contains(html, `class="mcq-feedback mcq-feedback-correct" hidden`) {
		t.Fatalf("expected hidden feedback, got %s", html)
	}
}

// TestRenderFieldList verifies field annotations render as definition
// lists.
func TestRenderFieldList(t *testing.T) {
	list := &doctree.FieldList{}
	field := &doctree.Field{Label: "note"}
	field.Append(doctree.NewParagraph(doctree.NewText("body")))
	list.Append(field)
	html := renderFragment(t, list)
	if !strings.Contains(html, "<dt>note</dt>") || !strings.Contains(html, "<dd><p>body</p>") {
		t.Fatalf("unexpected field list markup: %s", html)
	}
}

// TestCopyAssets verifies the embedded assets land under the output dir.
func TestCopyAssets(t *testing.T) {
	dir := t.TempDir()
	if err := CopyAssets(dir); err != nil {
		t.Fatalf("copy assets: %v", err)
	}
	for _, name := range []string{StylesheetName, ScriptName} {
		if _, err := os.Stat(filepath.Join(dir, AssetsDirName, name)); err != nil {
			t.Fatalf("expected copied asset %s: %v", name, err)
		}
	}
}

// TestAssetURL verifies base resolution and the copied-dir fallback.
func TestAssetURL(t *testing.T) {
	if got := AssetURL("", StylesheetName); got != "assets/"+StylesheetName {
		t.Fatalf("unexpected default url %q", got)
	}
	if got := AssetURL("/static/", ScriptName); got != "/static/"+ScriptName {
		t.Fatalf("unexpected based url %q", got)
	}
}
