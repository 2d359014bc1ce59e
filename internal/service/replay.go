package service

import (
	"context"
	"time"

	"cooling_control/internal/models"
)

const (
	defaultReplayInterval = time.Second
	minReplayInterval     = 10 * time.Millisecond
)

// StreamConfig bounds the replay pace.
type StreamConfig struct {
	DefaultInterval time.Duration
	MaxInterval     time.Duration
}

// ReplayService plays a stored run back one sample per tick.
type ReplayService struct {
	results Results
	cfg     StreamConfig
}

func NewReplayService(results Results, cfg StreamConfig) *ReplayService {
	if cfg.DefaultInterval <= 0 {
		cfg.DefaultInterval = defaultReplayInterval
	}
	return &ReplayService{results: results, cfg: cfg}
}

// Stream emits the first sample immediately and then one per interval. It
// stops early when emit fails or ctx is canceled.
func (s *ReplayService) Stream(ctx context.Context, userID int, id string, interval time.Duration, emit func(models.Sample) error) error {
	samples, err := s.results.Samples(ctx, userID, id)
	if err != nil {
		return err
	}

	t := time.NewTicker(s.pace(interval))
	defer t.Stop()

	for i, smp := range samples {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
		if err := emit(smp); err != nil {
			return err
		}
	}
	return nil
}

// pace clamps interval into the configured bounds.
func (s *ReplayService) pace(interval time.Duration) time.Duration {
	if interval <= 0 {
		return s.cfg.DefaultInterval
	}
	if interval < minReplayInterval {
		return minReplayInterval
	}
	if s.cfg.MaxInterval > 0 && interval > s.cfg.MaxInterval {
		return s.cfg.MaxInterval
	}
	return interval
}
