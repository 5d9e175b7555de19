package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/digimosa/kwsearch/internal/extractor"
	"github.com/digimosa/kwsearch/internal/extractor/detectors"
	"github.com/digimosa/kwsearch/internal/models"
)

// DefaultWorkers is used by Search callers that do not pick a worker count.
const DefaultWorkers = 4

type Options struct {
	Workers      int
	Encoding     string
	MaxLineBytes int
	// Logger receives worker progress and per-file failures. Nil discards everything.
	Logger *slog.Logger
}

// Coordinator partitions a file list across workers and merges their findings.
type Coordinator struct {
	workers int
	factory *extractor.Factory
	logger  *slog.Logger
}

func NewCoordinator(opts Options) (*Coordinator, error) {
	if opts.Workers <= 0 {
		return nil, &ConfigError{Field: "workers", Err: ErrInvalidWorkers}
	}

	factory, err := extractor.NewFactory(opts.Encoding, opts.MaxLineBytes)
	if err != nil {
		return nil, &ConfigError{Field: "encoding", Err: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Coordinator{
		workers: opts.Workers,
		factory: factory,
		logger:  logger,
	}, nil
}

// Search runs a complete search with default options and returns keyword -> files.
func Search(files, keywords []string, workers int) (map[string][]string, error) {
	c, err := NewCoordinator(Options{Workers: workers})
	if err != nil {
		return nil, err
	}
	res, err := c.Run(context.Background(), files, keywords)
	if err != nil {
		return nil, err
	}
	return res.Matches, nil
}

// Run scans files for keywords and blocks until every worker has merged.
//
// Repeated paths are scanned once. Per-file failures are logged and counted in Result.Stats, never returned. If ctx is
// cancelled, workers finish their current file and merge, then Run returns ctx.Err()
// without a result, so a returned result always covers the whole file list.
func (c *Coordinator) Run(ctx context.Context, files, keywords []string) (*models.Result, error) {
	for _, kw := range keywords {
		if kw == "" {
			return nil, &ConfigError{Field: "keywords", Err: ErrEmptyKeyword}
		}
	}

	files = UniquePaths(files)
	res := &models.Result{
		Matches:   make(models.Matches),
		Files:     len(files),
		StartTime: time.Now(),
	}
	if len(files) == 0 || len(keywords) == 0 {
		res.EndTime = res.StartTime
		return res, nil
	}

	chunks, err := Partition(files, c.workers)
	if err != nil {
		return nil, err
	}

	detector := detectors.NewKeywordDetector(keywords)
	res.Keywords = detector.Keywords()
	store := NewStore()

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go c.worker(ctx, i+1, chunk, detector, store, &wg)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Matches, res.Stats = store.Snapshot()
	res.Stats.Workers = len(chunks)
	res.EndTime = time.Now()

	c.logger.Info("search complete",
		"files", len(files),
		"keywords", len(res.Keywords),
		"workers", len(chunks),
		"pairs", res.Matches.Pairs(),
		"missing", res.Stats.FilesMissing,
		"failed", res.Stats.FilesFailed,
		"duration", res.Duration())
	return res, nil
}

// UniquePaths drops repeated paths, keeping the first occurrence, so no file is scanned twice.
func UniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
