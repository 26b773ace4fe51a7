package build

// PageEvent reports the outcome of building one page.
type PageEvent struct {
	Source    string
	Output    string
	Questions int
	Err       string
}

// Observer receives build lifecycle events for UI or logging. All methods
// are called from the build goroutine, in order.
type Observer interface {
	// OnBuildStart signals the start of a build over the given pages.
	OnBuildStart(buildID string, pages []string)
	// OnPageStart signals that a page is being parsed.
	OnPageStart(source string)
	// OnPageDone delivers the outcome of one page.
	OnPageDone(event PageEvent)
	// OnWarning delivers a build warning as it is raised.
	OnWarning(warning Warning)
	// OnBuildEnd signals build completion.
	OnBuildEnd(result Result)
}
