package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cooling_control/internal/models"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite {
	return &RunSQLite{db: db}
}

var _ RunRepo = (*RunSQLite)(nil)

const (
	insertRunSQL = `
		INSERT INTO simulation_runs (id, created_at, user_id, seed, config, aborted, fault_minute, sample_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertSampleSQL = `
		INSERT INTO simulation_samples (run_id, minute, temperature, compressor_on, error, disturbance)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectRunColumns = `SELECT id, created_at, user_id, seed, config, aborted, fault_minute, sample_count FROM simulation_runs`

	// IS matches NULL for runs stored without a user.
	selectRunSQL = selectRunColumns + ` WHERE id = ? AND user_id IS ?`

	listRunsSQL = selectRunColumns + ` WHERE user_id IS ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?`

	selectSamplesSQL = `
		SELECT minute, temperature, compressor_on, error, disturbance
		FROM simulation_samples WHERE run_id = ? ORDER BY minute ASC
	`
)

// Save writes the run row and all of its samples in one transaction.
func (r *RunSQLite) Save(ctx context.Context, run models.Run, samples []models.Sample) error {
	cfgJSON, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("marshal config for run %s: %w", run.ID, err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	} else {
		createdAt = createdAt.UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertRunSQL,
		run.ID,
		createdAt,
		nullableUserID(run.UserID),
		strconv.FormatUint(run.Seed, 10),
		string(cfgJSON),
		run.Fault.Aborted,
		nullableMinute(run.Fault.FaultMinute),
		len(samples),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSampleSQL)
	if err != nil {
		return fmt.Errorf("prepare sample insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, s := range samples {
		if _, err := stmt.ExecContext(ctx, run.ID, s.Minute, s.Temperature, s.CompressorOn, s.Error, s.Disturbance); err != nil {
			return fmt.Errorf("insert sample %d of run %s: %w", s.Minute, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the user's run with the given id or ErrNotFound. A run owned by
// someone else is reported as not found.
func (r *RunSQLite) Get(ctx context.Context, userID int, id string) (models.Run, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunSQL, id, nullableUserID(userID)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Run{}, ErrNotFound
	}
	if err != nil {
		return models.Run{}, fmt.Errorf("select run %s: %w", id, err)
	}
	return run, nil
}

// List returns the user's runs newest first.
func (r *RunSQLite) List(ctx context.Context, userID, limit, offset int) ([]models.Run, error) {
	rows, err := r.db.QueryContext(ctx, listRunsSQL, nullableUserID(userID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list runs of user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Run, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Samples returns the stored time series of a run ordered by minute.
func (r *RunSQLite) Samples(ctx context.Context, id string) ([]models.Sample, error) {
	rows, err := r.db.QueryContext(ctx, selectSamplesSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select samples of run %s: %w", id, err)
	}
	defer rows.Close()

	out := make([]models.Sample, 0, 256)
	for rows.Next() {
		var s models.Sample
		if err := rows.Scan(&s.Minute, &s.Temperature, &s.CompressorOn, &s.Error, &s.Disturbance); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.Run, error) {
	var (
		run         models.Run
		userID      sql.NullInt64
		seed        string
		cfgJSON     string
		faultMinute sql.NullInt64
	)
	if err := row.Scan(&run.ID, &run.CreatedAt, &userID, &seed, &cfgJSON, &run.Fault.Aborted, &faultMinute, &run.SampleCount); err != nil {
		return models.Run{}, err
	}
	run.CreatedAt = run.CreatedAt.UTC()
	if userID.Valid {
		run.UserID = int(userID.Int64)
	}
	if faultMinute.Valid {
		m := int(faultMinute.Int64)
		run.Fault.FaultMinute = &m
	}

	v, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return models.Run{}, fmt.Errorf("parse seed %q: %w", seed, err)
	}
	run.Seed = v

	if err := json.Unmarshal([]byte(cfgJSON), &run.Config); err != nil {
		return models.Run{}, fmt.Errorf("decode config of run %s: %w", run.ID, err)
	}
	return run, nil
}

func nullableUserID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableMinute(m *int) any {
	if m == nil {
		return nil
	}
	return *m
}
