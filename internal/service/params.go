package service

import (
	"time"

	"cooling_control/internal/models"
)

// RunParams is one simulation request.
type RunParams struct {
	Config models.SimulationConfig
	Seed   *uint64 // nil picks a fresh seed, which is stored with the run
	UserID int
}

// RunOutcome is the stored run together with its full result.
type RunOutcome struct {
	Run    models.Run              `json:"run"`
	Result models.SimulationResult `json:"result"`
}

// ListParams pages through a user's stored runs, newest first.
type ListParams struct {
	UserID int
	Limit  int
	Offset int
}

// LogFilter supports history filtering by time range, type and run.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // "", "RUN_STARTED", "RUN_COMPLETED", "FAULT", "RUN_REJECTED"
	RunID string
}
