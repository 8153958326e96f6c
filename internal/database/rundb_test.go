package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mediasweep/thumbsweep/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) (*RunDB, func()) {
	t.Helper()

	tmpDir := t.TempDir()

	db, err := Open(tmpDir, DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
	}

	return db, cleanup
}

// newStoredReport creates a report with sample data for persistence tests.
func newStoredReport(root string, mode model.Mode, startedAt time.Time) *model.RunReport {
	report := model.NewRunReport(root, mode)
	report.StartedAt = startedAt
	report.Elapsed = 2 * time.Second

	report.AddFolderPlan(model.FolderPlan{
		Dir:         filepath.Join(root, "vacation"),
		Files:       3,
		Images:      2,
		Mains:       1,
		Derivatives: 1,
		Decisions: []model.FileDecision{
			{
				Name:         "sunset-150x150.jpg",
				Action:       model.ActionDelete,
				BaseIdentity: "sunset",
				Matches:      []string{"sunset.jpg"},
			},
		},
	})

	return report
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		dbDir := filepath.Join(tmpDir, "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		// Check that database file exists
		dbPath := filepath.Join(dbDir, "thumbsweep.db")
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "nonexistent-db")

		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when CreateIfNotExists=false and database does not exist")
		}

		// Verify error message is informative
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("expected error to mention missing database, got %q", err.Error())
		}

		// Verify database directory was NOT created
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created when CreateIfNotExists=false")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "existing-db")

		// First create the database
		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}

		// Insert a test run to verify data persists
		ctx := context.Background()
		report := newStoredReport("/photos", model.ModeScan, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
		id, err := db1.SaveRun(ctx, report)
		if err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		db1.Close()

		// Now open with CreateIfNotExists=false
		openOpts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}
		db2, err := Open(dbDir, openOpts)
		if err != nil {
			t.Fatalf("failed to open existing database with CreateIfNotExists=false: %v", err)
		}
		defer db2.Close()

		// Verify data persists
		retrieved, err := db2.GetRun(ctx, id)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if retrieved == nil {
			t.Error("expected run to exist in database")
		}
	})

	t.Run("CreateIfNotExists=false with directory but no db file", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "empty-dir")

		// Create the directory but not the database file
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}

		opts := Options{
			CreateIfNotExists: false,
			EnableWAL:         true,
		}

		_, err := Open(dbDir, opts)
		if err == nil {
			t.Fatal("expected error when directory exists but database file does not")
		}
	})
}

// TestDefaultOptions tests the default options values.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	if !opts.CreateIfNotExists {
		t.Error("expected CreateIfNotExists to be true by default")
	}
	if !opts.EnableWAL {
		t.Error("expected EnableWAL to be true by default")
	}
}

// TestSaveAndGetRun tests run persistence round-trips.
func TestSaveAndGetRun(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("save and retrieve run", func(t *testing.T) {
		report := newStoredReport("/photos", model.ModeClean, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
		report.Outcome.Deleted = 1

		id, err := db.SaveRun(ctx, report)
		if err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
		if id == 0 {
			t.Error("expected non-zero run id")
		}

		retrieved, err := db.GetRun(ctx, id)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if retrieved == nil {
			t.Fatal("expected run to exist")
		}

		if retrieved.Root != "/photos" {
			t.Errorf("expected root %q, got %q", "/photos", retrieved.Root)
		}
		if retrieved.Mode != model.ModeClean {
			t.Errorf("expected mode %q, got %q", model.ModeClean, retrieved.Mode)
		}
		if retrieved.Totals.Derivatives != 1 {
			t.Errorf("expected 1 derivative, got %d", retrieved.Totals.Derivatives)
		}
		if retrieved.Outcome.Deleted != 1 {
			t.Errorf("expected 1 deleted, got %d", retrieved.Outcome.Deleted)
		}
		if len(retrieved.Folders) != 1 {
			t.Fatalf("expected 1 folder plan, got %d", len(retrieved.Folders))
		}
		if len(retrieved.Folders[0].Decisions) != 1 {
			t.Fatalf("expected 1 decision, got %d", len(retrieved.Folders[0].Decisions))
		}
		if got := retrieved.Folders[0].Decisions[0].Name; got != "sunset-150x150.jpg" {
			t.Errorf("expected decision name %q, got %q", "sunset-150x150.jpg", got)
		}
	})

	t.Run("unknown id returns nil without error", func(t *testing.T) {
		retrieved, err := db.GetRun(ctx, 99999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if retrieved != nil {
			t.Error("expected nil for unknown run id")
		}
	})
}

// TestListRuns tests the history listing queries.
func TestListRuns(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Save three runs across two roots with distinct start times
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	runs := []*model.RunReport{
		newStoredReport("/photos", model.ModeScan, base),
		newStoredReport("/photos", model.ModeClean, base.Add(time.Hour)),
		newStoredReport("/archive", model.ModeScan, base.Add(2*time.Hour)),
	}
	for _, r := range runs {
		if _, err := db.SaveRun(ctx, r); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}

	t.Run("lists all runs newest first", func(t *testing.T) {
		list, err := db.ListRuns(ctx, "", 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}

		if len(list) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(list))
		}
		if list[0].Root != "/archive" {
			t.Errorf("expected newest run first, got root %q", list[0].Root)
		}
		if list[2].Mode != model.ModeScan || list[2].Root != "/photos" {
			t.Errorf("expected oldest run last, got %q %q", list[2].Mode, list[2].Root)
		}
	})

	t.Run("filters by root", func(t *testing.T) {
		list, err := db.ListRuns(ctx, "/photos", 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}

		if len(list) != 2 {
			t.Fatalf("expected 2 runs for /photos, got %d", len(list))
		}
		for _, meta := range list {
			if meta.Root != "/photos" {
				t.Errorf("expected only /photos runs, got %q", meta.Root)
			}
		}
	})

	t.Run("applies limit", func(t *testing.T) {
		list, err := db.ListRuns(ctx, "", 1)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}

		if len(list) != 1 {
			t.Fatalf("expected 1 run with limit, got %d", len(list))
		}
		if list[0].Root != "/archive" {
			t.Errorf("expected newest run, got root %q", list[0].Root)
		}
	})

	t.Run("carries counters and timestamps", func(t *testing.T) {
		list, err := db.ListRuns(ctx, "/archive", 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 run, got %d", len(list))
		}

		meta := list[0]
		if meta.Derivatives != 1 {
			t.Errorf("expected 1 derivative, got %d", meta.Derivatives)
		}
		if meta.PlannedDeletes != 1 {
			t.Errorf("expected 1 planned delete, got %d", meta.PlannedDeletes)
		}
		if meta.Elapsed != 2*time.Second {
			t.Errorf("expected 2s elapsed, got %s", meta.Elapsed)
		}
		if !meta.StartedAt.Equal(base.Add(2 * time.Hour)) {
			t.Errorf("expected start time %s, got %s", base.Add(2*time.Hour), meta.StartedAt)
		}
	})

	t.Run("empty database returns no runs", func(t *testing.T) {
		empty, cleanupEmpty := setupTestDB(t)
		defer cleanupEmpty()

		list, err := empty.ListRuns(ctx, "", 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(list) != 0 {
			t.Errorf("expected no runs, got %d", len(list))
		}
	})
}

// TestListRoots tests the distinct root listing.
func TestListRoots(t *testing.T) {
	t.Parallel()

	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, root := range []string{"/photos", "/archive", "/photos"} {
		report := newStoredReport(root, model.ModeScan, base.Add(time.Duration(i)*time.Hour))
		if _, err := db.SaveRun(ctx, report); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}

	roots, err := db.ListRoots(ctx)
	if err != nil {
		t.Fatalf("failed to list roots: %v", err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 distinct roots, got %d", len(roots))
	}
	if roots[0] != "/archive" || roots[1] != "/photos" {
		t.Errorf("expected sorted roots [/archive /photos], got %v", roots)
	}
}

// TestParseTimestamp tests timestamp parsing with various formats.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"sqlite default", "2025-06-01 10:30:00", true},
		{"iso with z", "2025-06-01T10:30:00Z", true},
		{"iso without timezone", "2025-06-01T10:30:00", true},
		{"rfc3339", "2025-06-01T10:30:00+02:00", true},
		{"with milliseconds", "2025-06-01 10:30:00.123", true},
		{"garbage", "not a timestamp", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := parseTimestamp(tt.input)
			if tt.valid && result.IsZero() {
				t.Errorf("expected %q to parse, got zero time", tt.input)
			}
			if !tt.valid && !result.IsZero() {
				t.Errorf("expected %q to return zero time, got %s", tt.input, result)
			}
		})
	}
}
