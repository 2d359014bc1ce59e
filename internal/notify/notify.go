// Package notify announces finished simulation runs over MQTT.
package notify

import (
	"encoding/json"
	"time"
)

// Publisher announces finished runs. Failures are reported to the caller,
// which logs them; a failed notification never fails a run.
type Publisher interface {
	PublishRun(n RunNotice) error
	Close() error
}

// RunNotice is what subscribers learn about a finished run.
type RunNotice struct {
	RunID       string
	FinishedAt  time.Time
	Mode        string
	Dynamics    string
	Duration    int
	SampleCount int
	Aborted     bool
	FaultMinute *int
}

type payload struct {
	Run runPayload `json:"run"`
}

type runPayload struct {
	ID          string `json:"id"`
	Timestamp   string `json:"timestamp"`
	Event       string `json:"event"`
	Mode        string `json:"mode"`
	Dynamics    string `json:"dynamics,omitempty"`
	Duration    int    `json:"duration"`
	SampleCount int    `json:"sample_count"`
	FaultMinute *int   `json:"fault_minute,omitempty"`
}

// Event names carried in the payload.
const (
	EventCompleted = "COMPLETED"
	EventFault     = "FAULT"
)

// FormatPayload renders the JSON message for n.
func FormatPayload(n RunNotice) ([]byte, error) {
	event := EventCompleted
	if n.Aborted {
		event = EventFault
	}
	return json.Marshal(payload{Run: runPayload{
		ID:          n.RunID,
		Timestamp:   n.FinishedAt.UTC().Format(time.RFC3339),
		Event:       event,
		Mode:        n.Mode,
		Dynamics:    n.Dynamics,
		Duration:    n.Duration,
		SampleCount: n.SampleCount,
		FaultMinute: n.FaultMinute,
	}})
}

// qos is 1 for faults and 0 otherwise.
func qos(n RunNotice) byte {
	if n.Aborted {
		return 1
	}
	return 0
}

// Nop drops every notice; used when no broker is configured.
type Nop struct{}

func (Nop) PublishRun(RunNotice) error { return nil }
func (Nop) Close() error { return nil }
