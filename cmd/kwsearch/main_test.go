package main

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/digimosa/kwsearch/internal/models"
	"github.com/digimosa/kwsearch/internal/storage"
)

func TestReportPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "r.json")
	tests := []struct {
		dir, name, want string
	}{
		{"reports", "", ""},
		{"reports", "r.json", filepath.Join("reports", "r.json")},
		{".", "r.json", "r.json"},
		{"", "r.json", "r.json"},
		{"reports", abs, abs},
	}
	for _, tt := range tests {
		if got := reportPath(tt.dir, tt.name); got != tt.want {
			t.Errorf("reportPath(%q, %q) = %q, want %q", tt.dir, tt.name, got, tt.want)
		}
	}
}

func TestLatestReport(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	report, err := latestReport(db)
	if err != nil || report != nil {
		t.Fatalf("latestReport(empty) = %v, %v; want nil, nil", report, err)
	}

	run, err := db.CreateRun(2, []string{"world", "hello"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	res := &models.Result{
		Matches: models.Matches{"world": {"a.txt", "b.txt"}, "hello": {"a.txt"}},
		Stats:   models.Stats{Workers: 2, FilesScanned: 2},
	}
	if err := db.CompleteRun(run, res); err != nil {
		t.Fatal(err)
	}
	// a newer run that never completed is skipped
	if _, err := db.CreateRun(1, []string{"x"}, 1); err != nil {
		t.Fatal(err)
	}

	report, err = latestReport(db)
	if err != nil {
		t.Fatalf("latestReport() error = %v", err)
	}
	if report == nil || report.Summary.RunID != run.RunID {
		t.Fatalf("latestReport() = %+v, want run %s", report, run.RunID)
	}
	if report.Summary.Pairs != 3 || report.Summary.KeywordsMatched != 2 {
		t.Errorf("Summary = %+v", report.Summary)
	}
}

func TestSearch_UsageErrorsNameLongFlags(t *testing.T) {
	exiter, errWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(int) {}
	cli.ErrWriter = io.Discard
	t.Cleanup(func() { cli.OsExiter, cli.ErrWriter = exiter, errWriter })

	dir := t.TempDir()
	global := []string{"kwsearch", "--config", filepath.Join(dir, "none.yaml")}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"search", "--keywords-file", filepath.Join(dir, "none.txt"), "--no-db", dir}, "--keywords-file"},
		{[]string{"search", "-k", "x", "--no-db", "--serve", dir}, "--serve needs the history database, drop --no-db"},
	}
	for _, tt := range tests {
		app := newApp()
		app.Writer = io.Discard
		err := app.Run(append(append([]string(nil), global...), tt.args...))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Run(%v) error = %v, want it to mention %q", tt.args, err, tt.want)
		}
	}
}
