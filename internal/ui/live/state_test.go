package live

import (
	"testing"

	"lectern/internal/build"
)

// TestApplyEventToState verifies the reducer folds a full build lifecycle
// into rows and counters.
func TestApplyEventToState(t *testing.T) {
	state := State{}
	state = applyEventToState(state, Event{
		Kind:    EventBuildStart,
		BuildID: "b1",
		Pages:   []string{"a.rst", "b.rst"},
	})
	if state.BuildID != "b1" || len(state.Rows) != 2 {
		t.Fatalf("unexpected state after build start %+v", state)
	}
	if state.Rows[0].Status != "queued" {
		t.Fatalf("expected queued rows, got %q", state.Rows[0].Status)
	}

	state = applyEventToState(state, Event{Kind: EventPageStart, Source: "a.rst"})
	if state.Rows[0].Status != "parsing" {
		t.Fatalf("expected parsing status, got %q", state.Rows[0].Status)
	}

	state = applyEventToState(state, Event{
		Kind:    EventWarning,
		Warning: build.Warning{Source: "a.rst", Line: 3, Message: "oops"},
	})
	if len(state.Warnings) != 1 || state.Rows[0].Warnings != 1 {
		t.Fatalf("expected warning attributed to row, got %+v", state)
	}

	state = applyEventToState(state, Event{
		Kind: EventPageDone,
		Page: build.PageEvent{Source: "a.rst", Output: "a.html", Questions: 2},
	})
	if state.Rows[0].Status != "done" || state.Rows[0].Questions != 2 {
		t.Fatalf("unexpected row after page done %+v", state.Rows[0])
	}
	if state.Questions != 2 {
		t.Fatalf("expected 2 questions counted, got %d", state.Questions)
	}

	state = applyEventToState(state, Event{
		Kind: EventPageDone,
		Page: build.PageEvent{Source: "b.rst", Err: "read page: boom"},
	})
	if state.Rows[1].Status != "failed" || state.Rows[1].Error == "" {
		t.Fatalf("unexpected row after failure %+v", state.Rows[1])
	}

	state = applyEventToState(state, Event{Kind: EventBuildEnd})
	if !state.Done || state.LastEvent != "build complete" {
		t.Fatalf("unexpected final state %+v", state)
	}
}

// TestApplyEventUnknownRow verifies events for unknown pages are ignored.
func TestApplyEventUnknownRow(t *testing.T) {
	state := applyEventToState(State{}, Event{Kind: EventPageStart, Source: "ghost.rst"})
	if len(state.Rows) != 0 {
		t.Fatalf("expected no rows, got %+v", state.Rows)
	}
}
