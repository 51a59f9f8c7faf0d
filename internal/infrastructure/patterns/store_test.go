package patterns

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(NewJSONBackend(dir), nil), dir
}

func TestLogDeduplicatesByFingerprint(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Log("play music", `tell application "Music" to play`, true, "ok")
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	second, err := store.Log("play music", `  TELL application "music"   to PLAY `, true, "ok again")
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected one record, got ids %s and %s", first.ID, second.ID)
	}
	if second.SuccessCount != 2 {
		t.Fatalf("expected successCount 2, got %d", second.SuccessCount)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalRecords != 1 {
		t.Fatalf("expected 1 record, got %d", stats.TotalRecords)
	}
}

func TestLogFailureNeverIncrementsSuccessCount(t *testing.T) {
	store, _ := newTestStore(t)

	script := `tell application "Finder" to open home`
	if _, err := store.Log("open home", script, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	rec, err := store.Log("open home", script, false, "error -600")
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if rec.SuccessCount != 1 {
		t.Fatalf("failure changed successCount: %d", rec.SuccessCount)
	}
	if rec.Success {
		t.Fatalf("latest outcome should be failure: %+v", rec)
	}
	if rec.Result != "error -600" {
		t.Fatalf("result not updated: %q", rec.Result)
	}
}

func TestByTargetIncludesEveryDerivedTarget(t *testing.T) {
	store, _ := newTestStore(t)

	script := `tell application "Finder"
	tell application "System Events" to keystroke "a"
end tell`
	rec, err := store.Log("press a in finder", script, true, "ok")
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}

	for _, target := range []string{"Finder", "System Events"} {
		records, err := store.ByTarget(target)
		if err != nil {
			t.Fatalf("ByTarget(%s) error: %v", target, err)
		}
		found := false
		for _, r := range records {
			if r.ID == rec.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("record missing from ByTarget(%s)", target)
		}
	}
}

func TestByTargetSortsBySuccessCount(t *testing.T) {
	store, _ := newTestStore(t)

	weak := `tell application "Music" to pause`
	strong := `tell application "Music" to play`
	if _, err := store.Log("pause", weak, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := store.Log("play", strong, true, "ok"); err != nil {
			t.Fatalf("Log error: %v", err)
		}
	}

	records, err := store.ByTarget("Music")
	if err != nil {
		t.Fatalf("ByTarget error: %v", err)
	}
	if len(records) != 2 || records[0].SuccessCount < records[1].SuccessCount {
		t.Fatalf("expected successCount descending, got %+v", records)
	}
}

func TestFindSimilarOnlySuccessfulAndLimit(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Log("play jazz", `tell application "Music" to play playlist "Jazz"`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if _, err := store.Log("play rock", `tell application "Music" to play playlist "Rock"`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if _, err := store.Log("play blues", `tell application "Music" to play playlist "Blues"`, false, "boom"); err != nil {
		t.Fatalf("Log error: %v", err)
	}

	query := domain.DefaultSimilarQuery()
	query.Limit = 1
	records, err := store.FindSimilar("play some music", query)
	if err != nil {
		t.Fatalf("FindSimilar error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("limit not honored: %d records", len(records))
	}

	query.Limit = 10
	records, err = store.FindSimilar("play some music", query)
	if err != nil {
		t.Fatalf("FindSimilar error: %v", err)
	}
	for _, rec := range records {
		if !rec.Success {
			t.Fatalf("onlySuccessful returned a failed record: %+v", rec)
		}
	}
}

func TestFindSimilarKeywordOverlapDominates(t *testing.T) {
	store, _ := newTestStore(t)

	// Popular but unrelated.
	for i := 0; i < 20; i++ {
		if _, err := store.Log("quit mail", `tell application "Mail" to quit`, true, "ok"); err != nil {
			t.Fatalf("Log error: %v", err)
		}
	}
	if _, err := store.Log("play jazz playlist", `tell application "Music" to play playlist "Jazz"`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}

	records, err := store.FindSimilar("play jazz", domain.DefaultSimilarQuery())
	if err != nil {
		t.Fatalf("FindSimilar error: %v", err)
	}
	if len(records) == 0 || records[0].Intent != "play jazz playlist" {
		t.Fatalf("keyword overlap should beat popularity, got %+v", records)
	}
}

func TestFindSimilarTargetAndActionIntersection(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Log("play music", `tell application "Music" to play`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if _, err := store.Log("quit music", `tell application "Music" to quit`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}

	query := domain.DefaultSimilarQuery()
	query.Target = "Music"
	query.Action = "quit"
	records, err := store.FindSimilar("anything", query)
	if err != nil {
		t.Fatalf("FindSimilar error: %v", err)
	}
	if len(records) != 1 || records[0].Intent != "quit music" {
		t.Fatalf("intersection wrong: %+v", records)
	}
}

func TestFindSimilarColdStartFallsBackToAllRecords(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Log("play music", `tell application "Music" to play`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}

	records, err := store.FindSimilar("zzz qqq novel phrasing", domain.DefaultSimilarQuery())
	if err != nil {
		t.Fatalf("FindSimilar error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("cold start should fall back to all records, got %+v", records)
	}
}

func TestStatsCountsRepeatedTargets(t *testing.T) {
	store, _ := newTestStore(t)

	script := `tell application "Finder" to activate
tell application "Finder" to open home`
	if _, err := store.Log("open home", script, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.CountByTarget["Finder"] != 2 {
		t.Fatalf("expected finder counted twice, got %+v", stats.CountByTarget)
	}
	if stats.CountByCategory["files"] != 1 {
		t.Fatalf("expected files category, got %+v", stats.CountByCategory)
	}
}

func TestStoreReloadsFromBackend(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(NewJSONBackend(dir), nil)
	logged, err := store.Log("play music", `tell application "Music" to play`, true, "ok")
	if err != nil {
		t.Fatalf("Log error: %v", err)
	}

	reopened := NewStore(NewJSONBackend(dir), nil)
	records, err := reopened.ByTarget("Music")
	if err != nil {
		t.Fatalf("ByTarget error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after reload, got %d", len(records))
	}
	if diff := cmp.Diff(logged.Keywords, records[0].Keywords); diff != "" {
		t.Fatalf("keywords changed across reload (-logged +reloaded):\n%s", diff)
	}
}

func TestCorruptFilesDegradeToEmptyStore(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "patterns.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pattern-index.json"), []byte("also not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := NewStore(NewJSONBackend(dir), nil)
	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalRecords != 0 {
		t.Fatalf("corrupt files should yield empty store, got %+v", stats)
	}
	if _, err := store.Log("play", `tell application "Music" to play`, true, "ok"); err != nil {
		t.Fatalf("store unusable after corrupt load: %v", err)
	}
}

func TestLostIndexIsRebuiltFromRecords(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(NewJSONBackend(dir), nil)
	if _, err := store.Log("play music", `tell application "Music" to play`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "pattern-index.json")); err != nil {
		t.Fatalf("remove index: %v", err)
	}

	reopened := NewStore(NewJSONBackend(dir), nil)
	records, err := reopened.ByTarget("Music")
	if err != nil {
		t.Fatalf("ByTarget error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("index not rebuilt, got %+v", records)
	}
}

func TestClearEmptiesStoreAndBackend(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(NewJSONBackend(dir), nil)
	if _, err := store.Log("play", `tell application "Music" to play`, true, "ok"); err != nil {
		t.Fatalf("Log error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.TotalRecords != 0 {
		t.Fatalf("expected empty store, got %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(dir, "patterns.json")); !os.IsNotExist(err) {
		t.Fatalf("records document should be gone: %v", err)
	}
}
