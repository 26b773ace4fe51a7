package mcq

import (
	"fmt"
	"strings"
	"testing"

	"lectern/internal/doctree"
	"lectern/internal/rst"
	"lectern/internal/transform"
)

// fakeEnv is a minimal build session for directive tests.
type fakeEnv struct {
	count int
	names []string
}

func (e *fakeEnv) NextQuestionIndex() int {
	e.count++
	return e.count
}

func (e *fakeEnv) RegisterName(name, source string, line int) {
	e.names = append(e.names, name)
}

// warnSink records warnings from the parser and the transform passes.
type warnSink struct {
	warnings []string
}

func (w *warnSink) Warnf(source string, line int, format string, args ...any) {
	w.warnings = append(w.warnings, fmt.Sprintf("%s:%d: %s", source, line, fmt.Sprintf(format, args...)))
}

func newParser(env *fakeEnv, sink *warnSink) *rst.Parser {
	return rst.New(rst.Options{
		Directives: map[string]rst.DirectiveFunc{DirectiveName: NewDirective(env)},
		Reporter:   sink,
	})
}

func normalize(doc *doctree.Document, sink *warnSink) {
	var pipeline transform.Pipeline
	pipeline.Register(Transforms()...)
	pipeline.Run(&transform.Context{Document: doc, Reporter: sink})
}

// parseAndNormalize runs the full author-to-canonical path for one page.
func parseAndNormalize(t *testing.T, text string) (*doctree.Document, *fakeEnv, *warnSink) {
	t.Helper()
	env := &fakeEnv{}
	sink := &warnSink{}
	doc := newParser(env, sink).ParseDocument("page.rst", text)
	normalize(doc, sink)
	return doc, env, sink
}

func questionsOf(doc *doctree.Document) []*Question {
	var questions []*Question
	for _, node := range doctree.FindAll(doc, isQuestion) {
		questions = append(questions, node.(*Question))
	}
	return questions
}

func choicesOf(q *Question) []*Choice {
	var choices []*Choice
	for _, node := range doctree.FindAll(q, isChoice) {
		choices = append(choices, node.(*Choice))
	}
	return choices
}

const arithmeticPage = `.. mcq:: What is 2 + 2?
   :answer: B
   :name: arith-1

   Pick the best answer.

   A. 3

      :feedback: Close, but no.

   B. 4

      :feedback: Correct!

   C. 5
`

// TestDirectiveBuildsQuestion verifies the directive yields one Question
// with the prompt first and explicit options applied.
func TestDirectiveBuildsQuestion(t *testing.T) {
	env := &fakeEnv{}
	sink := &warnSink{}
	doc := newParser(env, sink).ParseDocument("page.rst", arithmeticPage)

	questions := questionsOf(doc)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	q := questions[0]
	if q.ID != "arith-1" || q.Answer != "B" {
		t.Fatalf("unexpected question id %q answer %q", q.ID, q.Answer)
	}
	if q.PromptText() != "What is 2 + 2?" {
		t.Fatalf("unexpected prompt %q", q.PromptText())
	}
	if len(env.names) != 1 || env.names[0] != "arith-1" {
		t.Fatalf("expected registered name arith-1, got %v", env.names)
	}
	body, ok := q.Children()[0].(*Body)
	if !ok {
		t.Fatalf("expected body node, got %T", q.Children()[0])
	}
	if _, ok := body.Children()[0].(*doctree.Paragraph); !ok {
		t.Fatalf("expected prompt paragraph first in body, got %T", body.Children()[0])
	}
	if !strings.Contains(q.RawContent, "Pick the best answer.") {
		t.Fatalf("expected raw content to keep the body text, got %q", q.RawContent)
	}
}

// TestDirectiveFallbackIDs verifies unnamed questions receive sequential
// mcq-N identifiers and that the counter also advances for named ones.
func TestDirectiveFallbackIDs(t *testing.T) {
	page := ".. mcq:: First?\n\n" +
		".. mcq:: Named?\n   :name: custom\n\n" +
		".. mcq:: Third?\n"
	doc, env, _ := parseAndNormalize(t, page)
	questions := questionsOf(doc)
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	ids := []string{questions[0].ID, questions[1].ID, questions[2].ID}
	want := []string{"mcq-1", "custom", "mcq-3"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, ids)
		}
	}
	if env.count != 3 {
		t.Fatalf("expected counter at 3, got %d", env.count)
	}
}

// TestDirectiveClassOptions verifies the class option splits on whitespace
// and the numbered and show_feedback flags map to classes.
func TestDirectiveClassOptions(t *testing.T) {
	page := ".. mcq:: Styled?\n" +
		"   :class: quiz hard\n" +
		"   :numbered:\n" +
		"   :show_feedback:\n"
	doc, _, _ := parseAndNormalize(t, page)
	q := questionsOf(doc)[0]
	classes := q.Attrs().Classes
	want := []string{"quiz", "hard", "numbered", "show-feedback"}
	if len(classes) != len(want) {
		t.Fatalf("expected classes %v, got %v", want, classes)
	}
	for i := range want {
		if classes[i] != want[i] {
			t.Fatalf("expected classes %v, got %v", want, classes)
		}
	}
}

// TestChoicesNormalization verifies the alphabetic list is rewritten into a
// choices list with positional ordinals and a single correct choice.
func TestChoicesNormalization(t *testing.T) {
	doc, _, sink := parseAndNormalize(t, arithmeticPage)
	q := questionsOf(doc)[0]

	lists := doctree.FindAll(q, func(n doctree.Node) bool {
		list, ok := n.(*doctree.EnumeratedList)
		return ok && list.Enum == doctree.EnumUpperAlpha
	})
	if len(lists) != 0 {
		t.Fatalf("expected alphabetic list to be replaced, found %d", len(lists))
	}

	choices := choicesOf(q)
	if len(choices) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(choices))
	}
	correct := 0
	for i, choice := range choices {
		wantOrdinal := string(rune('A' + i))
		if choice.Ordinal != wantOrdinal {
			t.Fatalf("expected ordinal %q at position %d, got %q", wantOrdinal, i, choice.Ordinal)
		}
		if choice.QuestionID != "arith-1" {
			t.Fatalf("expected back-reference arith-1, got %q", choice.QuestionID)
		}
		if choice.IsCorrect {
			correct++
			if choice.Ordinal != "B" {
				t.Fatalf("expected B to be correct, got %q", choice.Ordinal)
			}
		}
	}
	if correct != 1 {
		t.Fatalf("expected exactly one correct choice, got %d", correct)
	}
	if len(sink.warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", sink.warnings)
	}
}

// TestFeedbackExtraction verifies feedback fields become trailing Feedback
// nodes and choices without one still get an empty Feedback.
func TestFeedbackExtraction(t *testing.T) {
	doc, _, _ := parseAndNormalize(t, arithmeticPage)
	choices := choicesOf(questionsOf(doc)[0])

	wantText := []string{"Close, but no.", "Correct!", ""}
	for i, choice := range choices {
		children := choice.Children()
		feedback, ok := children[len(children)-1].(*Feedback)
		if !ok {
			t.Fatalf("choice %s: expected trailing feedback, got %T", choice.Ordinal, children[len(children)-1])
		}
		if feedback.IsCorrect != choice.IsCorrect {
			t.Fatalf("choice %s: feedback correctness %v does not mirror choice %v", choice.Ordinal, feedback.IsCorrect, choice.IsCorrect)
		}
		if got := doctree.TextOf(feedback); got != wantText[i] {
			t.Fatalf("choice %s: expected feedback %q, got %q", choice.Ordinal, wantText[i], got)
		}
		count := 0
		for _, child := range children {
			if _, ok := child.(*Feedback); ok {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("choice %s: expected exactly one feedback node, got %d", choice.Ordinal, count)
		}
		fields := doctree.FindAll(choice, func(n doctree.Node) bool {
			_, ok := n.(*doctree.FieldList)
			return ok
		})
		if len(fields) != 0 {
			t.Fatalf("choice %s: expected feedback field list to be removed", choice.Ordinal)
		}
	}
}

// TestFeedbackLabelCaseInsensitive verifies the feedback label matches
// regardless of case.
func TestFeedbackLabelCaseInsensitive(t *testing.T) {
	page := ".. mcq:: Case?\n   :answer: A\n\n" +
		"   A. yes\n\n" +
		"      :Feedback: Loud and clear.\n"
	doc, _, _ := parseAndNormalize(t, page)
	choice := choicesOf(questionsOf(doc)[0])[0]
	children := choice.Children()
	feedback := children[len(children)-1].(*Feedback)
	if got := doctree.TextOf(feedback); got != "Loud and clear." {
		t.Fatalf("expected case-insensitive feedback label, got %q", got)
	}
}

// TestUnmatchedAnswerWarns verifies an answer matching no ordinal yields
// zero correct choices plus a warning.
func TestUnmatchedAnswerWarns(t *testing.T) {
	page := ".. mcq:: Which?\n   :answer: D\n\n" +
		"   A. one\n" +
		"   B. two\n" +
		"   C. three\n"
	doc, _, sink := parseAndNormalize(t, page)
	for _, choice := range choicesOf(questionsOf(doc)[0]) {
		if choice.IsCorrect {
			t.Fatalf("expected no correct choice, %s is marked correct", choice.Ordinal)
		}
	}
	if len(sink.warnings) != 1 || !strings.Contains(sink.warnings[0], "matches no choice ordinal") {
		t.Fatalf("expected unmatched-answer warning, got %v", sink.warnings)
	}
}

// TestMissingChoicesListWarns verifies a question without an alphabetic
// list is reported with its prompt.
func TestMissingChoicesListWarns(t *testing.T) {
	page := ".. mcq:: Where are the choices?\n   :answer: A\n\n" +
		"   Only prose here.\n"
	_, _, sink := parseAndNormalize(t, page)
	if len(sink.warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", sink.warnings)
	}
	if !strings.Contains(sink.warnings[0], "Where are the choices?") {
		t.Fatalf("expected warning to carry the prompt, got %q", sink.warnings[0])
	}
}

// TestMultipleAlphabeticLists verifies each alphabetic list is converted
// independently, with a warning, and ordinals restart per list.
func TestMultipleAlphabeticLists(t *testing.T) {
	page := ".. mcq:: Split?\n   :answer: A\n\n" +
		"   A. one\n" +
		"   B. two\n\n" +
		"   An interruption.\n\n" +
		"   A. three\n"
	doc, _, sink := parseAndNormalize(t, page)
	q := questionsOf(doc)[0]
	lists := doctree.FindAll(q, isChoicesList)
	if len(lists) != 2 {
		t.Fatalf("expected 2 choices lists, got %d", len(lists))
	}
	choices := choicesOf(q)
	if len(choices) != 3 {
		t.Fatalf("expected 3 choices, got %d", len(choices))
	}
	if choices[2].Ordinal != "A" {
		t.Fatalf("expected ordinals to restart per list, got %q", choices[2].Ordinal)
	}
	found := false
	for _, w := range sink.warnings {
		if strings.Contains(w, "upper-alphabetic lists") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected multiple-lists warning, got %v", sink.warnings)
	}
}

// TestTooManyChoices verifies items past Z keep their raw form and the
// overflow is reported.
func TestTooManyChoices(t *testing.T) {
	var page strings.Builder
	page.WriteString(".. mcq:: Crowded?\n   :answer: A\n\n")
	for i := 0; i < 27; i++ {
		fmt.Fprintf(&page, "   A. item %d\n", i)
	}
	doc, _, sink := parseAndNormalize(t, page.String())
	q := questionsOf(doc)[0]
	if got := len(choicesOf(q)); got != 26 {
		t.Fatalf("expected 26 promoted choices, got %d", got)
	}
	lists := doctree.FindAll(q, isChoicesList)
	if len(lists) != 1 {
		t.Fatalf("expected 1 choices list, got %d", len(lists))
	}
	last := lists[0].Children()[26]
	if _, ok := last.(*doctree.ListItem); !ok {
		t.Fatalf("expected overflow item kept unpromoted, got %T", last)
	}
	found := false
	for _, w := range sink.warnings {
		if strings.Contains(w, "more than 26 choices") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected overflow warning, got %v", sink.warnings)
	}
}

// TestArabicListUntouched verifies non-alphabetic lists survive the
// normalization untouched.
func TestArabicListUntouched(t *testing.T) {
	page := ".. mcq:: Steps?\n   :answer: A\n\n" +
		"   1. first step\n" +
		"   2. second step\n\n" +
		"   A. yes\n" +
		"   B. no\n"
	doc, _, _ := parseAndNormalize(t, page)
	q := questionsOf(doc)[0]
	arabic := doctree.FindAll(q, func(n doctree.Node) bool {
		list, ok := n.(*doctree.EnumeratedList)
		return ok && list.Enum == doctree.EnumArabic
	})
	if len(arabic) != 1 {
		t.Fatalf("expected arabic list to survive, found %d", len(arabic))
	}
	if got := len(choicesOf(q)); got != 2 {
		t.Fatalf("expected 2 choices, got %d", got)
	}
}

// TestNormalizationIdempotent verifies a second pipeline run neither
// changes the tree nor emits new warnings.
func TestNormalizationIdempotent(t *testing.T) {
	doc, _, first := parseAndNormalize(t, arithmeticPage)
	if len(first.warnings) != 0 {
		t.Fatalf("unexpected warnings on first run: %v", first.warnings)
	}

	second := &warnSink{}
	normalize(doc, second)
	if len(second.warnings) != 0 {
		t.Fatalf("expected no warnings on rerun, got %v", second.warnings)
	}
	for _, choice := range choicesOf(questionsOf(doc)[0]) {
		count := 0
		for _, child := range choice.Children() {
			if _, ok := child.(*Feedback); ok {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("choice %s: expected one feedback after rerun, got %d", choice.Ordinal, count)
		}
	}
}
