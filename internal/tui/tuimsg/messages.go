// Package tuimsg defines messages scenes send back to the root model.
package tuimsg

// StatusMsg replaces the status line text
type StatusMsg struct {
	Text string
}

// ErrorMsg reports a failed calculation. Scenes keep running; the root model
// shows the error until the next successful calculation.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg dismisses the current error
type ClearErrorMsg struct{}
