package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mediasweep/thumbsweep/internal/database"
	"github.com/mediasweep/thumbsweep/internal/model"
)

// TestIntegrationScanCleanHistory exercises the full workflow on one tree:
// 1. Scan the tree and verify nothing is touched
// 2. Clean the tree and verify the matched derivative is deleted
// 3. List both runs from the history database
//
// Note: Not using t.Parallel() because the history step captures os.Stdout.
func TestIntegrationScanCleanHistory(t *testing.T) {
	root := writeTestTree(t)
	dbDir := filepath.Join(t.TempDir(), "db")
	reportDir := t.TempDir()

	// Step 1: scan
	scanReportPath := filepath.Join(reportDir, "scan.txt")
	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"scan", root, "--db-dir", dbDir, "-o", scanReportPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scan Execute() error = %v", err)
	}

	scanReport, err := os.ReadFile(scanReportPath)
	if err != nil {
		t.Fatalf("failed to read scan report: %v", err)
	}
	if !strings.Contains(string(scanReport), "THUMBSWEEP REPORT") {
		t.Errorf("expected report banner, got: %s", scanReport)
	}
	if _, err := os.Stat(filepath.Join(root, "vacation", "sunset-150x150.jpg")); err != nil {
		t.Fatal("expected derivative to survive the scan")
	}

	// Step 2: clean
	cleanReportPath := filepath.Join(reportDir, "clean.txt")
	rootCmd = NewRootCmd()
	rootCmd.SetArgs([]string{"clean", root, "--db-dir", dbDir, "-o", cleanReportPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("clean Execute() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "vacation", "sunset-150x150.jpg")); !os.IsNotExist(err) {
		t.Error("expected matched derivative to be deleted by clean")
	}
	if _, err := os.Stat(filepath.Join(root, "vacation", "sunset.jpg")); err != nil {
		t.Error("expected main file to survive clean")
	}

	// Step 3: both runs are in the history database
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to open database after runs: %v", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background(), root, 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", len(runs))
	}

	t.Logf("Recorded %d runs. Listing via history command...", len(runs))

	// The history command renders both runs.
	historyCmd := NewRootCmd()
	historyCmd.SetArgs([]string{"history", "--db-dir", dbDir})

	oldStdout := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("failed to create pipe: %v", pipeErr)
	}
	os.Stdout = w

	execErr := historyCmd.Execute()

	w.Close()
	os.Stdout = oldStdout

	if execErr != nil {
		t.Fatalf("history Execute() error = %v", execErr)
	}

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	r.Close()
	output := buf.String()

	if !strings.Contains(output, "Run history (2 runs):") {
		t.Errorf("expected two runs in history listing, got: %s", output)
	}
	if !strings.Contains(output, "scan") || !strings.Contains(output, "clean") {
		t.Errorf("expected both run modes in listing, got: %s", output)
	}
}

// TestIntegrationRelocateWorkflow exercises relocation into a fresh
// destination and its history record.
func TestIntegrationRelocateWorkflow(t *testing.T) {
	root := writeTestTree(t)
	dest := filepath.Join(t.TempDir(), "mains")
	dbDir := filepath.Join(t.TempDir(), "db")
	reportPath := filepath.Join(t.TempDir(), "relocate.txt")

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"relocate", root, dest, "--db-dir", dbDir, "-o", reportPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("relocate Execute() error = %v", err)
	}

	// Only the main image lands in dest.
	if _, err := os.Stat(filepath.Join(dest, "sunset.jpg")); err != nil {
		t.Error("expected main image in destination")
	}
	for _, name := range []string{"sunset-150x150.jpg", "orphan-300x300.jpg", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(dest, name)); !os.IsNotExist(err) {
			t.Errorf("expected %s to stay out of destination", name)
		}
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("failed to open database after run: %v", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background(), root, 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Mode != model.ModeRelocate {
		t.Errorf("expected recorded mode relocate, got %s", runs[0].Mode)
	}
}

// TestIntegrationJSONReport verifies the counters that flow from the
// walk through analysis into the JSON report envelope.
func TestIntegrationJSONReport(t *testing.T) {
	root := writeTestTree(t)
	reportPath := filepath.Join(t.TempDir(), "scan.json")

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"scan", root, "--no-db", "--json", "-o", reportPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("scan Execute() error = %v", err)
	}

	content, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var envelope struct {
		Version string           `json:"version"`
		Report  *model.RunReport `json:"report"`
	}
	if err := json.Unmarshal(content, &envelope); err != nil {
		t.Fatalf("failed to parse JSON report: %v", err)
	}

	if envelope.Version == "" {
		t.Error("expected version in envelope")
	}
	if envelope.Report == nil {
		t.Fatal("expected report in envelope")
	}

	totals := envelope.Report.Totals
	if totals.Files != 4 {
		t.Errorf("expected 4 files, got %d", totals.Files)
	}
	if totals.Images != 3 {
		t.Errorf("expected 3 images, got %d", totals.Images)
	}
	if totals.Mains != 1 {
		t.Errorf("expected 1 main, got %d", totals.Mains)
	}
	if totals.Derivatives != 2 {
		t.Errorf("expected 2 derivatives, got %d", totals.Derivatives)
	}
	if totals.PlannedDeletes != 1 {
		t.Errorf("expected 1 planned delete, got %d", totals.PlannedDeletes)
	}
	if totals.Unresolved != 1 {
		t.Errorf("expected 1 unresolved, got %d", totals.Unresolved)
	}
}

// Example_integrationTest demonstrates how to run integration tests.
func Example_integrationTest() {
	// Run integration tests with:
	//   go test -v ./cmd/thumbsweep/... -run TestIntegration
	//
	// Integration tests operate on temporary directories only and
	// complete in well under a second.

	fmt.Println("See TestIntegrationScanCleanHistory for a complete example")
	// Output: See TestIntegrationScanCleanHistory for a complete example
}
