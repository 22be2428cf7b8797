package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreBestTimes(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{LevelID: "boxsphere", Player: "ann", Outcome: OutcomeWon, Elapsed: 12 * time.Second},
		{LevelID: "boxsphere", Player: "bob", Outcome: OutcomeWon, Elapsed: 7500 * time.Millisecond},
		{LevelID: "boxsphere", Player: "cat", Outcome: OutcomeLost, Elapsed: 2 * time.Second},
		{LevelID: "courtyard", Player: "ann", Outcome: OutcomeWon, Elapsed: time.Second},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestTimes("boxsphere", 10)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected 2 wins, got %d", len(best))
	}
	if best[0].Player != "bob" || best[0].Elapsed != 7500*time.Millisecond {
		t.Errorf("best[0] = %+v, expected bob in 7.5s", best[0])
	}
	if best[1].Player != "ann" {
		t.Errorf("best[1].Player = %q, expected ann", best[1].Player)
	}
}

func TestStoreBestTimesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		r := Run{LevelID: "boxsphere", Outcome: OutcomeWon, Elapsed: time.Duration(i+1) * time.Second}
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestTimes("boxsphere", 5)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(best))
	}
	if best[0].Elapsed != time.Second {
		t.Errorf("best[0].Elapsed = %v, expected 1s", best[0].Elapsed)
	}
}

func TestStoreRejectsBadOutcome(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{LevelID: "boxsphere", Outcome: "playing"}); err == nil {
		t.Error("SaveRun() should reject an unfinished outcome")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{LevelID: "boxsphere", Player: "first", Outcome: OutcomeLost})
	store.SaveRun(Run{LevelID: "boxsphere", Player: "second", Outcome: OutcomeWon, Difficulty: "hard"})

	runs, err := store.RecentRuns("boxsphere", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].Player != "second" {
		t.Fatalf("RecentRuns() = %+v, expected newest first", runs)
	}
	if runs[0].Difficulty != "hard" {
		t.Errorf("Difficulty = %q, expected hard", runs[0].Difficulty)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{LevelID: "boxsphere", Outcome: OutcomeWon})
	store.SaveRun(Run{LevelID: "courtyard", Outcome: OutcomeWon})

	if err := store.ClearRuns("boxsphere"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RecentRuns("boxsphere", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	runs, _ = store.RecentRuns("courtyard", 10)
	if len(runs) != 1 {
		t.Errorf("Other levels should be untouched, got %d runs", len(runs))
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetLevelStats("boxsphere")
	if err != nil {
		t.Fatalf("GetLevelStats() on empty db failed: %v", err)
	}
	if stats.Runs != 0 || stats.BestTime != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(Run{LevelID: "boxsphere", Outcome: OutcomeWon, Elapsed: 9 * time.Second})
	store.SaveRun(Run{LevelID: "boxsphere", Outcome: OutcomeWon, Elapsed: 4 * time.Second})
	store.SaveRun(Run{LevelID: "boxsphere", Outcome: OutcomeLost, Elapsed: time.Second})

	stats, err = store.GetLevelStats("boxsphere")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Wins != 2 || stats.Losses != 1 {
		t.Errorf("stats = %+v, expected 3 runs, 2 wins, 1 loss", stats)
	}
	if stats.BestTime != 4*time.Second {
		t.Errorf("BestTime = %v, expected 4s", stats.BestTime)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if all["boxsphere"] == nil || all["boxsphere"].Wins != 2 {
		t.Errorf("GetAllLevelStats() = %+v", all)
	}
}
