package search

import (
	"os"
	"path/filepath"
)

// ExpandPaths turns the CLI inputs into a file list. Directories are walked in lexical
// order and only supported extensions are kept. Other paths pass through unchanged,
// missing ones included, so the worker that gets them reports them.
func (c *Coordinator) ExpandPaths(paths []string) []string {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				c.logger.Warn("error accessing path", "path", p, "error", err)
				return nil // Continue walking
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !c.factory.IsSupported(filepath.Ext(p)) {
				return nil
			}
			files = append(files, p)
			return nil
		})
		if err != nil {
			c.logger.Error("error walking directory", "path", path, "error", err)
		}
	}
	return files
}
