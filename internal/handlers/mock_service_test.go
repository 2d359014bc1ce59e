package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"cooling_control/internal/models"
	"cooling_control/internal/report"
	"cooling_control/internal/repository"
	"cooling_control/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSimulation struct {
	out     service.RunOutcome
	err     error
	calls   int
	lastReq service.RunParams
}

func (m *mockSimulation) Run(_ context.Context, p service.RunParams) (service.RunOutcome, error) {
	m.calls++
	m.lastReq = p
	return m.out, m.err
}

// mockResults serves a fixed set of runs, each visible only to its owner.
type mockResults struct {
	runs    map[string]models.Run
	samples map[string][]models.Sample
	err     error

	lastList service.ListParams
}

func (m *mockResults) lookup(userID int, id string) (models.Run, error) {
	if m.err != nil {
		return models.Run{}, m.err
	}
	run, ok := m.runs[id]
	if !ok || run.UserID != userID {
		return models.Run{}, repository.ErrNotFound
	}
	return run, nil
}

func (m *mockResults) Get(_ context.Context, userID int, id string) (models.Run, error) {
	return m.lookup(userID, id)
}

func (m *mockResults) List(_ context.Context, p service.ListParams) ([]models.Run, error) {
	m.lastList = p
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Run, 0, len(m.runs))
	for _, r := range m.runs {
		if r.UserID == p.UserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockResults) Samples(_ context.Context, userID int, id string) ([]models.Sample, error) {
	if _, err := m.lookup(userID, id); err != nil {
		return nil, err
	}
	return m.samples[id], nil
}

func (m *mockResults) Summary(_ context.Context, userID int, id string) (report.Summary, error) {
	run, err := m.lookup(userID, id)
	if err != nil {
		return report.Summary{}, err
	}
	return report.Summarize(models.SimulationResult{Samples: m.samples[id], Fault: run.Fault}), nil
}

func (m *mockResults) ExportCSV(ctx context.Context, userID int, id string, w io.Writer) error {
	samples, err := m.Samples(ctx, userID, id)
	if err != nil {
		return err
	}
	return report.WriteCSV(w, samples)
}

type mockEventLog struct {
	resp     []models.RunEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	lastRun  string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.RunEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastRun = f.RunID
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withHeaders(req *http.Request, hdr http.Header) *http.Request {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}

// ownerID owns every run in storedRuns.
const ownerID = 1

func storedRuns() *mockResults {
	minute := 2
	return &mockResults{
		runs: map[string]models.Run{
			"r1": {ID: "r1", UserID: ownerID, Seed: 42, SampleCount: 3, Fault: models.FaultStatus{Aborted: true, FaultMinute: &minute}},
		},
		samples: map[string][]models.Sample{
			"r1": {
				{Minute: 0, Temperature: 22},
				{Minute: 1, Temperature: 23, Error: 1, Disturbance: 1},
				{Minute: 2, Temperature: 23, Error: 1, Disturbance: 1},
			},
		},
	}
}
