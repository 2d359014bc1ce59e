package models

import "time"

// Run is a persisted simulation run.
type Run struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UserID      int              `json:"user_id,omitempty"`
	Seed        uint64           `json:"seed"`
	Config      SimulationConfig `json:"config"`
	Fault       FaultStatus      `json:"fault"`
	SampleCount int              `json:"sample_count"`
}

// RunEvent is a single audit log entry.
type RunEvent struct {
	EventID     string    `json:"event_id"`
	RunID       string    `json:"run_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // RUN_STARTED | RUN_COMPLETED | FAULT | RUN_REJECTED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// Event types.
const (
	EventRunStarted   = "RUN_STARTED"
	EventRunCompleted = "RUN_COMPLETED"
	EventFault        = "FAULT"
	EventRunRejected  = "RUN_REJECTED"
)
