package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/digimosa/kwsearch/internal/models"
	"github.com/digimosa/kwsearch/internal/reporting"
	"github.com/digimosa/kwsearch/internal/storage"
	"github.com/digimosa/kwsearch/internal/wordlist"
)

func setupServer(t *testing.T) (*Server, *storage.DB, string) {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	kwPath := filepath.Join(dir, "keywords.txt")
	kws, err := wordlist.Load(kwPath)
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(nil, db, kws, nil), db, kwPath
}

func TestReport_NotAvailable(t *testing.T) {
	s, _, _ := setupServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET / status = %d, want 404", rec.Code)
	}
}

func TestReport_Rendered(t *testing.T) {
	s, _, _ := setupServer(t)
	now := time.Now()
	s.SetReport(reporting.NewReport("run-xyz", &models.Result{
		Matches:   models.Matches{"k": {"a.txt"}},
		Keywords:  []string{"k"},
		StartTime: now,
		EndTime:   now,
	}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "run-xyz") {
		t.Error("GET / body does not contain the run id")
	}
}

func TestRuns(t *testing.T) {
	s, db, _ := setupServer(t)
	run, err := db.CreateRun(2, []string{"k"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.CompleteRun(run, &models.Result{Matches: models.Matches{"k": {"a.txt"}}}); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	var runs []storage.RunModel
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("GET /runs body is not JSON: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != run.RunID {
		t.Errorf("GET /runs = %+v", runs)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/"+run.RunID, nil))
	var got storage.RunModel
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("GET /runs/{id} body is not JSON: %v", err)
	}
	if len(got.Hits) != 1 || got.Hits[0].FilePath != "a.txt" {
		t.Errorf("GET /runs/{id} hits = %+v", got.Hits)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /runs/missing status = %d, want 404", rec.Code)
	}
}

func TestKeywords(t *testing.T) {
	s, _, kwPath := setupServer(t)
	h := s.Handler()

	tests := []struct {
		body string
		want int
	}{
		{`{"value":"python"}`, http.StatusOK},
		{`{"value":""}`, http.StatusBadRequest},
		{`{"value":"   "}`, http.StatusBadRequest},
		{`not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/keywords", strings.NewReader(tt.body)))
		if rec.Code != tt.want {
			t.Errorf("POST /keywords %s status = %d, want %d", tt.body, rec.Code, tt.want)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/keywords", nil))
	var items []string
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(items, []string{"python"}) {
		t.Errorf("GET /keywords = %v, want [python]", items)
	}

	reloaded, err := wordlist.Load(kwPath)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Contains("python") {
		t.Error("keyword was not persisted")
	}
}
