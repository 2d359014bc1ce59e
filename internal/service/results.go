package service

import (
	"context"
	"fmt"
	"io"

	"cooling_control/internal/models"
	"cooling_control/internal/report"
	"cooling_control/internal/repository"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type ResultsService struct {
	runRepo repository.RunRepo
}

func NewResultsService(runRepo repository.RunRepo) *ResultsService {
	return &ResultsService{runRepo: runRepo}
}

// Get returns the user's stored run or repository.ErrNotFound.
func (s *ResultsService) Get(ctx context.Context, userID int, id string) (models.Run, error) {
	return s.runRepo.Get(ctx, userID, id)
}

// List pages through runs; the limit is clamped to [1, 500] and defaults to 50.
func (s *ResultsService) List(ctx context.Context, p ListParams) ([]models.Run, error) {
	limit := p.Limit
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	offset := max(p.Offset, 0)
	return s.runRepo.List(ctx, p.UserID, limit, offset)
}

// Samples returns the time series of an existing run.
func (s *ResultsService) Samples(ctx context.Context, userID int, id string) ([]models.Sample, error) {
	if _, err := s.runRepo.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.runRepo.Samples(ctx, id)
}

// Summary computes descriptive statistics for a stored run.
func (s *ResultsService) Summary(ctx context.Context, userID int, id string) (report.Summary, error) {
	res, err := s.result(ctx, userID, id)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(res), nil
}

// ExportCSV writes the run's samples in the export format.
func (s *ResultsService) ExportCSV(ctx context.Context, userID int, id string, w io.Writer) error {
	samples, err := s.Samples(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(w, samples); err != nil {
		return fmt.Errorf("export run %s: %w", id, err)
	}
	return nil
}

func (s *ResultsService) result(ctx context.Context, userID int, id string) (models.SimulationResult, error) {
	run, err := s.runRepo.Get(ctx, userID, id)
	if err != nil {
		return models.SimulationResult{}, err
	}
	samples, err := s.runRepo.Samples(ctx, id)
	if err != nil {
		return models.SimulationResult{}, err
	}
	return models.SimulationResult{Samples: samples, Fault: run.Fault}, nil
}
