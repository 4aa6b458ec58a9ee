// Package views holds the per-view state of the browser front-end as
// explicit controllers: filter state, fetch status, and the last
// applied result set. Each controller tracks a generation counter so a
// response that arrives after its view moved on (new filters, or the
// view was closed) is discarded instead of overwriting fresher state.
package views

// Status is the three-state fetch indicator every view tracks.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)
