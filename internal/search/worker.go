package search

import (
	"context"
	"sync"

	"github.com/digimosa/kwsearch/internal/extractor/detectors"
	"github.com/digimosa/kwsearch/internal/models"
)

// worker scans its chunk without holding any lock, then merges once.
func (c *Coordinator) worker(ctx context.Context, id int, chunk []string, detector *detectors.KeywordDetector, store *Store, wg *sync.WaitGroup) {
	defer wg.Done()

	if len(chunk) == 0 {
		return
	}
	c.logger.Info("worker started", "worker_id", id, "chunk", chunk)

	local := make(LocalFindings)
	var stats models.Stats

	for _, path := range chunk {
		if ctx.Err() != nil {
			c.logger.Info("worker cancelled", "worker_id", id, "next", path)
			break
		}

		size, ferr := c.scanFile(path, detector, local)
		if ferr == nil {
			stats.FilesScanned++
			stats.BytesScanned += size
			continue
		}

		switch ferr.Kind {
		case MissingFile:
			stats.FilesMissing++
			c.logger.Warn("file not found", "worker_id", id, "path", path, "error", ferr.Err)
		default:
			stats.FilesFailed++
			stats.BytesScanned += size
			c.logger.Error("error processing file", "worker_id", id, "path", path, "error", ferr.Err)
		}
	}

	store.Merge(local, stats)
	c.logger.Debug("worker merged", "worker_id", id, "keywords", len(local))
}
