package service

import (
	"context"
	"io"
	"time"

	"cooling_control/internal/config"
	"cooling_control/internal/logger"
	"cooling_control/internal/models"
	"cooling_control/internal/notify"
	"cooling_control/internal/report"
	"cooling_control/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Simulation validates, runs and stores simulations.
type Simulation interface {
	Run(ctx context.Context, p RunParams) (RunOutcome, error)
}

// Results exposes read-only access to stored runs. Every call is scoped to
// userID; another user's run is reported as repository.ErrNotFound.
type Results interface {
	Get(ctx context.Context, userID int, id string) (models.Run, error)
	List(ctx context.Context, p ListParams) ([]models.Run, error)
	Samples(ctx context.Context, userID int, id string) ([]models.Sample, error)
	Summary(ctx context.Context, userID int, id string) (report.Summary, error)
	ExportCSV(ctx context.Context, userID int, id string, w io.Writer) error
}

// EventLog exposes the append-only run audit log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RunEvent, error)
}

// Replay streams a stored run back at a chosen pace.
type Replay interface {
	Stream(ctx context.Context, userID int, id string, interval time.Duration, emit func(models.Sample) error) error
}

type Service struct {
	Simulation
	Results
	EventLog
	Replay
	Authorization
}

// Options carries the configuration and collaborators the services need.
type Options struct {
	Simulation config.Simulation
	Auth       AuthConfig
	Stream     StreamConfig
	Publisher  notify.Publisher
	Logger     *logger.Logger
}

func NewService(repos *repository.Repository, opts Options) *Service {
	results := NewResultsService(repos.RunRepo)
	return &Service{
		Simulation:    NewSimulationService(repos.RunRepo, repos.EventRepo, opts.Publisher, opts.Simulation, opts.Logger),
		Results:       results,
		EventLog:      NewEventLogService(repos.EventRepo),
		Replay:        NewReplayService(results, opts.Stream),
		Authorization: NewAuthService(repos.Auth, opts.Auth),
	}
}
