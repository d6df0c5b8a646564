package ui

import "github.com/imsel/echotrails/trail"

// EventMsg wraps a pipeline ProgressUpdate for bubbletea delivery.
type EventMsg struct {
	Update trail.ProgressUpdate
}

// EventsClosedMsg signals that the pipeline closed its event stream.
type EventsClosedMsg struct{}
