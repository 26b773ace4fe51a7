package live

import (
	"time"

	"lectern/internal/build"
)

// PageRow holds UI state for a single page.
type PageRow struct {
	Source    string
	Status    string
	Questions int
	Warnings  int
	Error     string
}

// State captures the live UI state for one build.
type State struct {
	BuildID   string
	StartedAt time.Time
	Rows      []PageRow
	Questions int
	Warnings  []build.Warning
	Done      bool
	LastEvent string
}

// applyEventToState folds one event into the state.
func applyEventToState(state State, event Event) State {
	switch event.Kind {
	case EventBuildStart:
		state.BuildID = event.BuildID
		if state.StartedAt.IsZero() {
			state.StartedAt = time.Now()
		}
		state.Rows = make([]PageRow, 0, len(event.Pages))
		for _, page := range event.Pages {
			state.Rows = append(state.Rows, PageRow{Source: page, Status: "queued"})
		}
	case EventPageStart:
		state = updateRow(state, event.Source, func(row PageRow) PageRow {
			row.Status = "parsing"
			return row
		})
	case EventPageDone:
		state = updateRow(state, event.Page.Source, func(row PageRow) PageRow {
			if event.Page.Err != "" {
				row.Status = "failed"
				row.Error = event.Page.Err
			} else {
				row.Status = "done"
			}
			row.Questions = event.Page.Questions
			return row
		})
		state.Questions += event.Page.Questions
		state.LastEvent = "built " + event.Page.Source
	case EventWarning:
		state.Warnings = append(state.Warnings, event.Warning)
		state = updateRow(state, event.Warning.Source, func(row PageRow) PageRow {
			row.Warnings++
			return row
		})
		state.LastEvent = "warning: " + event.Warning.String()
	case EventBuildEnd:
		state.Done = true
		state.LastEvent = "build complete"
	}
	return state
}

func updateRow(state State, source string, fn func(PageRow) PageRow) State {
	for i, row := range state.Rows {
		if row.Source == source {
			state.Rows[i] = fn(row)
			return state
		}
	}
	return state
}
