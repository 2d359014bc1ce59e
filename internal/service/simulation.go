package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"cooling_control/internal/config"
	"cooling_control/internal/logger"
	"cooling_control/internal/models"
	"cooling_control/internal/notify"
	"cooling_control/internal/repository"
	"cooling_control/internal/simulation"

	"github.com/google/uuid"
)

// SimulationService turns a request into a stored run: it validates the
// configuration, runs the engine, persists the series and logs the outcome.
type SimulationService struct {
	runRepo   repository.RunRepo
	eventRepo repository.EventRepo
	publisher notify.Publisher
	limits    config.Simulation
	log       *logger.Logger

	now    func() time.Time
	newID  func() string
	seeder func() uint64
}

func NewSimulationService(
	runRepo repository.RunRepo,
	eventRepo repository.EventRepo,
	publisher notify.Publisher,
	limits config.Simulation,
	log *logger.Logger,
) *SimulationService {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &SimulationService{
		runRepo:   runRepo,
		eventRepo: eventRepo,
		publisher: publisher,
		limits:    limits,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		seeder:    rand.Uint64,
	}
}

// Run executes one simulation. Invalid configurations are rejected with an
// error wrapping simulation.ErrInvalidConfiguration; a fault is not an error.
func (s *SimulationService) Run(ctx context.Context, p RunParams) (RunOutcome, error) {
	cfg, err := PrepareConfig(p.Config, s.limits)
	if err != nil {
		s.appendEvent(ctx, models.RunEvent{
			Type:        models.EventRunRejected,
			Description: "Simulation rejected: " + err.Error(),
			Metadata:    map[string]any{"user_id": p.UserID, "mode": cfg.Mode},
		})
		return RunOutcome{}, err
	}

	seed := s.seeder()
	if p.Seed != nil {
		seed = *p.Seed
	}

	run := models.Run{
		ID:        s.newID(),
		CreatedAt: s.now(),
		UserID:    p.UserID,
		Seed:      seed,
		Config:    cfg,
	}

	s.appendEvent(ctx, models.RunEvent{
		RunID:       run.ID,
		OccurredAt:  run.CreatedAt,
		Type:        models.EventRunStarted,
		Description: fmt.Sprintf("Simulation started: %s/%s for %d minutes", cfg.Mode, cfg.Dynamics, cfg.Duration),
		Metadata:    map[string]any{"seed": fmt.Sprint(seed), "user_id": p.UserID},
	})

	res, err := simulation.RunContext(ctx, cfg, simulation.NewSeededSource(seed))
	if err != nil {
		return RunOutcome{}, fmt.Errorf("run simulation %s: %w", run.ID, err)
	}

	run.Fault = res.Fault
	run.SampleCount = len(res.Samples)

	if err := s.runRepo.Save(ctx, run, res.Samples); err != nil {
		return RunOutcome{}, fmt.Errorf("store run %s: %w", run.ID, err)
	}

	s.appendEvent(ctx, outcomeEvent(run, s.now()))
	s.notify(run)

	s.log.Infow("simulation_completed",
		"run_id", run.ID,
		"mode", cfg.Mode,
		"dynamics", cfg.Dynamics,
		"duration", cfg.Duration,
		"samples", run.SampleCount,
		"aborted", run.Fault.Aborted,
	)

	return RunOutcome{Run: run, Result: res}, nil
}

func outcomeEvent(run models.Run, at time.Time) models.RunEvent {
	if run.Fault.Aborted && run.Fault.FaultMinute != nil {
		minute := *run.Fault.FaultMinute
		return models.RunEvent{
			RunID:       run.ID,
			OccurredAt:  at,
			Type:        models.EventFault,
			Description: fmt.Sprintf("Long disturbance fault at minute %d; run aborted", minute),
			Metadata:    map[string]any{"fault_minute": minute, "samples": run.SampleCount},
		}
	}
	return models.RunEvent{
		RunID:       run.ID,
		OccurredAt:  at,
		Type:        models.EventRunCompleted,
		Description: fmt.Sprintf("Simulation completed: %d samples", run.SampleCount),
		Metadata:    map[string]any{"samples": run.SampleCount},
	}
}

// appendEvent records e; the audit log never fails a run.
func (s *SimulationService) appendEvent(ctx context.Context, e models.RunEvent) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now()
	}
	if err := s.eventRepo.Append(ctx, e); err != nil {
		s.log.Warnw("append_event_failed", "type", e.Type, "run_id", e.RunID, "err", err)
	}
}

func (s *SimulationService) notify(run models.Run) {
	err := s.publisher.PublishRun(notify.RunNotice{
		RunID:       run.ID,
		FinishedAt:  s.now(),
		Mode:        string(run.Config.Mode),
		Dynamics:    string(run.Config.Dynamics),
		Duration:    run.Config.Duration,
		SampleCount: run.SampleCount,
		Aborted:     run.Fault.Aborted,
		FaultMinute: run.Fault.FaultMinute,
	})
	if err != nil {
		s.log.Warnw("publish_run_failed", "run_id", run.ID, "err", err)
	}
}

// IsInvalidConfiguration reports whether err is a rejected configuration.
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, simulation.ErrInvalidConfiguration)
}
