// Package live renders a console build-progress UI using Bubble Tea.
package live

import "lectern/internal/build"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventBuildStart signals the start of a build.
	EventBuildStart EventKind = iota
	// EventPageStart signals that a page is being parsed.
	EventPageStart
	// EventPageDone delivers a finished page.
	EventPageDone
	// EventWarning delivers a build warning.
	EventWarning
	// EventBuildEnd signals build completion.
	EventBuildEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind    EventKind
	BuildID string
	Pages   []string
	Page    build.PageEvent
	Source  string
	Warning build.Warning
	Result  build.Result
}
