package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cooling_control/internal/models"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RunRepo stores finished simulation runs together with their samples. Reads
// are scoped to the owning user; userID 0 addresses runs stored without one.
type RunRepo interface {
	Save(ctx context.Context, run models.Run, samples []models.Sample) error
	Get(ctx context.Context, userID int, id string) (models.Run, error)
	List(ctx context.Context, userID, limit, offset int) ([]models.Run, error)
	Samples(ctx context.Context, id string) ([]models.Sample, error)
}

// EventQuery filters the audit log; zero values mean "no bound".
type EventQuery struct {
	From  time.Time
	To    time.Time
	Type  string
	RunID string
}

type EventRepo interface {
	Append(ctx context.Context, e models.RunEvent) error
	List(ctx context.Context, q EventQuery) ([]models.RunEvent, error)
}

type Repository struct {
	RunRepo   RunRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		RunRepo:   NewRunSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
