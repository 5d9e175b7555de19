package search

import (
	"os"

	"github.com/digimosa/kwsearch/internal/extractor/detectors"
)

// scanFile records each keyword found in path at most once. Findings made before a read
// error stay in local. It returns the file size for successfully opened files.
func (c *Coordinator) scanFile(path string, detector *detectors.KeywordDetector, local LocalFindings) (int64, *FileError) {
	file, err := os.Open(path)
	if err != nil {
		return 0, &FileError{Path: path, Kind: MissingFile, Err: err}
	}
	defer file.Close()

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	scanner, ext := c.factory.GetScannerForFile(path)
	c.logger.Debug("scanning file", "path", path, "type", ext)

	match := detector.NewFileMatch()
	err = scanner.Scan(file, func(line string) bool {
		for _, kw := range match.Observe(line) {
			local[kw] = append(local[kw], path)
		}
		return !match.Complete()
	})
	if err != nil {
		return size, &FileError{Path: path, Kind: ReadFailure, Err: err}
	}
	return size, nil
}
