// Package build runs one documentation build: discover pages, parse them,
// apply the transform pipeline, and write the rendered site.
package build

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Warning is one non-fatal build diagnostic with its source position.
type Warning struct {
	Source  string
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Source == "" {
		return w.Message
	}
	return fmt.Sprintf("%s:%d: %s", w.Source, w.Line, w.Message)
}

type nameEntry struct {
	source string
	line   int
}

// Env is one build session. It owns the running question counter, the
// document-wide name registry, and the collected warnings. A fresh Env is
// created per build, so no state survives across builds in one process.
type Env struct {
	BuildID string

	logger   zerolog.Logger
	observer Observer
	mcqCount int
	names    map[string]nameEntry
	warnings []Warning
}

// NewEnv creates a fresh build session.
func NewEnv(logger zerolog.Logger, observer Observer) *Env {
	return &Env{
		BuildID:  uuid.NewString(),
		logger:   logger,
		observer: observer,
		names:    map[string]nameEntry{},
	}
}

// NextQuestionIndex increments and returns the per-build question counter.
func (e *Env) NextQuestionIndex() int {
	e.mcqCount++
	return e.mcqCount
}

// QuestionCount returns how many questions the build has seen so far.
func (e *Env) QuestionCount() int { return e.mcqCount }

// RegisterName records a document-unique name. Duplicates are warned about
// and the first registration wins.
func (e *Env) RegisterName(name, source string, line int) {
	if prev, ok := e.names[name]; ok {
		e.Warnf(source, line, "duplicate name %q (first registered at %s:%d)", name, prev.source, prev.line)
		return
	}
	e.names[name] = nameEntry{source: source, line: line}
}

// HasName reports whether a name is registered.
func (e *Env) HasName(name string) bool {
	_, ok := e.names[name]
	return ok
}

// Warnf records a build warning, logs it, and forwards it to the observer.
func (e *Env) Warnf(source string, line int, format string, args ...any) {
	warning := Warning{Source: source, Line: line, Message: fmt.Sprintf(format, args...)}
	e.warnings = append(e.warnings, warning)
	e.logger.Warn().Str("source", warning.Source).Int("line", warning.Line).Msg(warning.Message)
	if e.observer != nil {
		e.observer.OnWarning(warning)
	}
}

// Warnings returns the warnings collected so far.
func (e *Env) Warnings() []Warning { return e.warnings }
