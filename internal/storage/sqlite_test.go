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

func run(course string, seed float64, ms int) TimeEntry {
	return TimeEntry{
		CourseID:   course,
		Seed:       seed,
		BlockCount: 10,
		Duration:   time.Duration(ms) * time.Millisecond,
		Player:     "tester",
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndTopTimes(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []TimeEntry{
		run("marble", 0.42, 12500),
		run("marble", 0.42, 9800),
		run("marble", 0.77, 15000),
		run("marble_sprint", 0.42, 4200),
	} {
		if _, err := store.SaveTime(e); err != nil {
			t.Fatalf("SaveTime() failed: %v", err)
		}
	}

	times, err := store.TopTimes("marble", 10)
	if err != nil {
		t.Fatalf("TopTimes() failed: %v", err)
	}
	if len(times) != 3 {
		t.Fatalf("Expected 3 times, got %d", len(times))
	}

	expected := []time.Duration{9800 * time.Millisecond, 12500 * time.Millisecond, 15 * time.Second}
	for i, e := range expected {
		if times[i].Duration != e {
			t.Errorf("times[%d] = %v, expected %v", i, times[i].Duration, e)
		}
	}
	if times[0].Seed != 0.42 || times[0].BlockCount != 10 || times[0].Player != "tester" {
		t.Errorf("times[0] = %+v", times[0])
	}
	if times[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTopTimesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 20; i++ {
		store.SaveTime(run("marble", 0.1, i*1000))
	}

	times, err := store.TopTimes("marble", 5)
	if err != nil {
		t.Fatalf("TopTimes() failed: %v", err)
	}
	if len(times) != 5 {
		t.Errorf("Expected 5 times, got %d", len(times))
	}
	if times[0].Duration != time.Second {
		t.Errorf("fastest = %v, expected 1s", times[0].Duration)
	}
}

func TestStoreBestTime(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestTime("marble", 0.42); err != nil || ok {
		t.Fatalf("BestTime on empty store = ok %v, err %v; expected none", ok, err)
	}

	store.SaveTime(run("marble", 0.42, 8000))
	store.SaveTime(run("marble", 0.42, 4900))
	store.SaveTime(run("marble", 0.43, 1000))

	best, ok, err := store.BestTime("marble", 0.42)
	if err != nil {
		t.Fatalf("BestTime() failed: %v", err)
	}
	if !ok || best != 4900*time.Millisecond {
		t.Errorf("BestTime = %v, %v; expected 4.9s", best, ok)
	}
}

func TestStoreLayoutTimes(t *testing.T) {
	store := openTestStore(t)

	store.SaveTime(run("marble", 0.42, 8000))
	store.SaveTime(run("marble", 0.43, 1000))
	store.SaveTime(run("marble", 0.42, 6000))

	times, err := store.LayoutTimes("marble", 0.42, 10)
	if err != nil {
		t.Fatalf("LayoutTimes() failed: %v", err)
	}
	if len(times) != 2 {
		t.Fatalf("Expected 2 times, got %d", len(times))
	}
	if times[0].Duration != 6*time.Second {
		t.Errorf("fastest = %v, expected 6s", times[0].Duration)
	}
}

func TestStoreRejectsNonPositiveTime(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveTime(run("marble", 0.42, 0)); err == nil {
		t.Error("Expected error for zero duration")
	}
}

func TestStoreClearTimes(t *testing.T) {
	store := openTestStore(t)

	store.SaveTime(run("marble", 0.42, 5000))
	store.SaveTime(run("marble_sprint", 0.42, 3000))

	if err := store.ClearTimes("marble"); err != nil {
		t.Fatalf("ClearTimes() failed: %v", err)
	}

	times, _ := store.TopTimes("marble", 10)
	if len(times) != 0 {
		t.Errorf("Expected 0 times after clear, got %d", len(times))
	}

	sprint, _ := store.TopTimes("marble_sprint", 10)
	if len(sprint) != 1 {
		t.Errorf("Sprint times should not be affected by clearing marble")
	}
}

func TestStoreCourseStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveTime(run("marble", 0.42, 4000))
	store.SaveTime(run("marble", 0.42, 6000))
	store.SaveTime(run("marble", 0.5, 8000))

	stats, err := store.GetCourseStats("marble")
	if err != nil {
		t.Fatalf("GetCourseStats() failed: %v", err)
	}
	if stats.Runs != 3 {
		t.Errorf("Runs = %d, expected 3", stats.Runs)
	}
	if stats.Layouts != 2 {
		t.Errorf("Layouts = %d, expected 2", stats.Layouts)
	}
	if stats.Best != 4*time.Second {
		t.Errorf("Best = %v, expected 4s", stats.Best)
	}
	if stats.Average != 6*time.Second {
		t.Errorf("Average = %v, expected 6s", stats.Average)
	}

	empty, err := store.GetCourseStats("nothing")
	if err != nil {
		t.Fatalf("GetCourseStats() on empty course failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllCourseStats()
	if err != nil {
		t.Fatalf("GetAllCourseStats() failed: %v", err)
	}
	if len(all) != 1 || all["marble"].Runs != 3 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
