package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"lectern/internal/build"
)

// Controller runs the live UI and implements build.Observer.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout))
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnBuildStart forwards build start events to the UI.
func (c *Controller) OnBuildStart(buildID string, pages []string) {
	c.send(Event{Kind: EventBuildStart, BuildID: buildID, Pages: pages})
}

// OnPageStart forwards page start events to the UI.
func (c *Controller) OnPageStart(source string) {
	c.send(Event{Kind: EventPageStart, Source: source})
}

// OnPageDone forwards page completion events to the UI.
func (c *Controller) OnPageDone(event build.PageEvent) {
	c.send(Event{Kind: EventPageDone, Page: event})
}

// OnWarning forwards build warnings to the UI.
func (c *Controller) OnWarning(warning build.Warning) {
	c.send(Event{Kind: EventWarning, Warning: warning})
}

// OnBuildEnd forwards build completion to the UI and closes it.
func (c *Controller) OnBuildEnd(result build.Result) {
	c.send(Event{Kind: EventBuildEnd, Result: result})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
