package patterns

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	backend := NewSQLiteBackend(t.TempDir())
	defer backend.Close()

	rec := domain.ExecutionRecord{
		ID:           "rec-1",
		Timestamp:    time.Now().UTC().Truncate(time.Second),
		Intent:       "play jazz",
		Targets:      []string{"Music"},
		Script:       `tell application "Music" to play playlist "Jazz"`,
		Success:      true,
		Result:       "ok",
		Category:     domain.CategoryMedia,
		Actions:      []string{"play"},
		SuccessCount: 2,
		Keywords:     []string{"play", "jazz", "music", "playlist"},
	}
	index := domain.NewPatternIndex()
	index.ByTarget["music"] = []string{"rec-1"}
	index.ByAction["play"] = []string{"rec-1"}
	index.ByCategory["media"] = []string{"rec-1"}
	index.ByKeyword["jazz"] = []string{"rec-1"}

	if err := backend.Save([]domain.ExecutionRecord{rec}, index); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	records, loadedIndex, err := backend.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if diff := cmp.Diff(rec, records[0]); diff != "" {
		t.Fatalf("record mismatch (-saved +loaded):\n%s", diff)
	}
	if diff := cmp.Diff(index, loadedIndex); diff != "" {
		t.Fatalf("index mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSQLiteBackendDrivesStore(t *testing.T) {
	backend := NewSQLiteBackend(t.TempDir())
	defer backend.Close()
	store := NewStore(backend, nil)

	if _, err := store.Log("play music", `tell application "Music" to play`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if _, err := store.Log("play music", `tell application "music"   to play`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}

	reopened := NewStore(backend, nil)
	records, err := reopened.ByTarget("Music")
	if err != nil {
		t.Fatalf("ByTarget error: %v", err)
	}
	if len(records) != 1 || records[0].SuccessCount != 2 {
		t.Fatalf("expected one merged record with successCount 2, got %+v", records)
	}
}

func TestSQLiteBackendReset(t *testing.T) {
	backend := NewSQLiteBackend(t.TempDir())
	defer backend.Close()

	index := domain.NewPatternIndex()
	index.ByTarget["music"] = []string{"rec-1"}
	if err := backend.Save([]domain.ExecutionRecord{{ID: "rec-1", Timestamp: time.Now()}}, index); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := backend.Reset(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	records, loadedIndex, err := backend.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 0 || len(loadedIndex.ByTarget) != 0 {
		t.Fatalf("reset left data behind: %d records, %+v", len(records), loadedIndex.ByTarget)
	}
}
