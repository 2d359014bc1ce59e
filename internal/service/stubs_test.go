package service

import (
	"context"
	"sync"

	"cooling_control/internal/models"
	"cooling_control/internal/repository"
)

// memRunRepo is an in-memory repository.RunRepo.
type memRunRepo struct {
	mu      sync.Mutex
	runs    map[string]models.Run
	samples map[string][]models.Sample
	order   []string

	saveErr    error
	samplesErr error
	listUser   int
	listLimit  int
	listOffset int
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{runs: map[string]models.Run{}, samples: map[string][]models.Sample{}}
}

func (m *memRunRepo) Save(_ context.Context, run models.Run, samples []models.Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs[run.ID] = run
	m.samples[run.ID] = append([]models.Sample(nil), samples...)
	m.order = append(m.order, run.ID)
	return nil
}

func (m *memRunRepo) Get(_ context.Context, userID int, id string) (models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok || run.UserID != userID {
		return models.Run{}, repository.ErrNotFound
	}
	return run, nil
}

func (m *memRunRepo) List(_ context.Context, userID, limit, offset int) ([]models.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listUser, m.listLimit, m.listOffset = userID, limit, offset
	out := make([]models.Run, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if run := m.runs[m.order[i]]; run.UserID == userID {
			out = append(out, run)
		}
	}
	return out, nil
}

func (m *memRunRepo) Samples(_ context.Context, id string) ([]models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.samplesErr != nil {
		return nil, m.samplesErr
	}
	return m.samples[id], nil
}

// memEventRepo records appended events.
type memEventRepo struct {
	mu        sync.Mutex
	events    []models.RunEvent
	appendErr error

	calls int
	gotQ  repository.EventQuery
	out   []models.RunEvent
	err   error
}

func (m *memEventRepo) Append(_ context.Context, e models.RunEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memEventRepo) List(_ context.Context, q repository.EventQuery) ([]models.RunEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.gotQ = q
	return m.out, m.err
}

func (m *memEventRepo) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}
