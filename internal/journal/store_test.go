package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"uidmigrate/internal/migrate"
	"uidmigrate/internal/uid"
)

func testResult(t *testing.T, runID string) *migrate.Result {
	t.Helper()
	legacy, err := uid.Parse("0123456789ABCDEF0011223344556677")
	if err != nil {
		t.Fatal(err)
	}
	rejected, err := uid.Parse("FFEEDDCCBBAA99887766554433221100")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC()
	return &migrate.Result{
		RunID:       runID,
		SourcePath:  "/music/song.rpp",
		OutputPath:  "/music/song-migrated.rpp",
		Occurrences: 3,
		Decisions: []migrate.Decision{
			{Label: "Surge XT", Legacy: legacy, Current: legacy.ToCurrent(), Accepted: true},
			{Label: "Other", Legacy: rejected, Current: rejected.ToCurrent(), Accepted: false},
		},
		Accepted:   map[uid.ClassID]uid.ClassID{legacy: legacy.ToCurrent()},
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.RecordRun(ctx, "REAPER", testResult(t, "run-1")); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordRun(ctx, "Bitwig", testResult(t, "run-2")); err != nil {
		t.Fatal(err)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "run-2" {
		t.Fatalf("runs not newest first: %q", runs[0].RunID)
	}
	if runs[1].Format != "REAPER" || runs[1].Accepted != 1 || runs[1].Rejected != 1 {
		t.Fatalf("run record wrong: %+v", runs[1])
	}
	if runs[0].Occurrences != 3 {
		t.Fatalf("occurrences = %d", runs[0].Occurrences)
	}
}

func TestListRunsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for i, id := range []string{"a", "b", "c"} {
		result := testResult(t, id)
		result.StartedAt = result.StartedAt.Add(time.Duration(i) * time.Second)
		if err := store.RecordRun(ctx, "Ardour", result); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
}

func TestSchemaVersionGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("err = %v, want ErrSchemaMismatch", err)
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	if err := store.RecordRun(ctx, "Ardour", testResult(t, "dup")); err != nil {
		t.Fatal(err)
	}
	if err := store.RecordRun(ctx, "Ardour", testResult(t, "dup")); err == nil {
		t.Fatal("duplicate run id accepted")
	}
}
