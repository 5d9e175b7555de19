package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/digimosa/kwsearch/internal/reporting"
	"github.com/digimosa/kwsearch/internal/storage"
	"github.com/digimosa/kwsearch/internal/wordlist"
)

type Server struct {
	db       *storage.DB
	keywords *wordlist.List
	logger   *slog.Logger

	mu     sync.RWMutex
	report *reporting.Report
}

// NewServer serves report (may be nil until SetReport), the run history in db and the keyword list.
func NewServer(report *reporting.Report, db *storage.DB, keywords *wordlist.List, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		report:   report,
		db:       db,
		keywords: keywords,
		logger:   logger,
	}
}

func (s *Server) SetReport(r *reporting.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleReport)
	mux.HandleFunc("GET /runs", s.handleRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleRun)
	mux.HandleFunc("GET /keywords", s.handleListKeywords)
	mux.HandleFunc("POST /keywords", s.handleAddKeyword)
	return mux
}

func (s *Server) Start(addr string) error {
	s.logger.Info("starting review server", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	report := s.report
	s.mu.RUnlock()

	if report == nil {
		http.Error(w, "No report available, run a search first", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderHTML(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.db.GetAllRuns()
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.db.GetRun(r.PathValue("id"))
	if errors.Is(err, storage.ErrRunNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to load run", "error", err)
		http.Error(w, "Failed to load run", http.StatusInternalServerError)
		return
	}
	writeJSON(w, run)
}

func (s *Server) handleListKeywords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.keywords.Items())
}

func (s *Server) handleAddKeyword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Value) == "" {
		http.Error(w, "Value cannot be empty", http.StatusBadRequest)
		return
	}

	if err := s.keywords.Add(req.Value); err != nil {
		s.logger.Error("failed to add keyword", "error", err)
		http.Error(w, "Failed to save keyword", http.StatusInternalServerError)
		return
	}

	s.logger.Info("keyword added via web UI", "value", req.Value)
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
