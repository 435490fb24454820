package viewmodel

import "github.com/Guliveer/vitalis/monitor/internal/poller"

// Status tells a view what it can render for the current poll state.
type Status int

const (
	// StatusLoading means no response has been accepted yet.
	StatusLoading Status = iota
	// StatusUnavailable means polling answered but no snapshot was ever
	// accepted; views must render an explicit "data unavailable" state.
	StatusUnavailable
	// StatusReady means the latest poll succeeded.
	StatusReady
	// StatusDegraded means the last poll failed and the view is showing the
	// last known good snapshot.
	StatusDegraded
)

// String returns a short label for the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnavailable:
		return "data unavailable"
	case StatusReady:
		return "live"
	case StatusDegraded:
		return "stale"
	default:
		return "unknown"
	}
}

// Availability classifies a poll state.
func Availability(st poller.State) Status {
	switch {
	case st.Snapshot == nil && st.Loading:
		return StatusLoading
	case st.Snapshot == nil:
		return StatusUnavailable
	case st.LastError != nil:
		return StatusDegraded
	default:
		return StatusReady
	}
}
