package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cooling_control/internal/models"
	"cooling_control/internal/repository/db"
)

// runs against a real database so the NULL-aware owner filter is exercised
func TestRunSQLite_ScopesRunsToOwner(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	users := NewUserRepository(conn)
	alice, err := users.Create(ctx, "alice", "h1")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := users.Create(ctx, "bob", "h2")
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	repo := NewRunSQLite(conn)
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, owner := range []struct {
		id     string
		userID int
	}{
		{"alice-1", alice},
		{"bob-1", bob},
		{"alice-2", alice},
		{"anon-1", 0},
	} {
		run, samples := twoMinuteRun()
		run.ID = owner.id
		run.UserID = owner.userID
		run.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Save(ctx, run, samples); err != nil {
			t.Fatalf("save %s: %v", owner.id, err)
		}
	}

	got, err := repo.List(ctx, alice, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "alice-2" || got[1].ID != "alice-1" {
		t.Fatalf("alice sees %+v", got)
	}

	anon, err := repo.List(ctx, 0, 10, 0)
	if err != nil {
		t.Fatalf("List anonymous: %v", err)
	}
	if len(anon) != 1 || anon[0].ID != "anon-1" {
		t.Fatalf("anonymous sees %+v", anon)
	}

	if _, err := repo.Get(ctx, bob, "alice-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("bob reading alice's run: expected ErrNotFound, got %v", err)
	}
	run, err := repo.Get(ctx, bob, "bob-1")
	if err != nil {
		t.Fatalf("Get own run: %v", err)
	}
	if run.UserID != bob || run.Config.Mode != models.ModeCustom {
		t.Fatalf("unexpected run: %+v", run)
	}

	samples, err := repo.Samples(ctx, "bob-1")
	if err != nil || len(samples) != 3 {
		t.Fatalf("Samples: %v (%d rows)", err, len(samples))
	}
}
