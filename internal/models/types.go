package models

import (
	"sort"
	"time"
)

// Matches maps a keyword to the files it was found in.
type Matches map[string][]string

// Keywords returns the matched keywords in lexical order.
func (m Matches) Keywords() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pairs counts (keyword, file) entries.
func (m Matches) Pairs() int {
	n := 0
	for _, files := range m {
		n += len(files)
	}
	return n
}

// Clone returns a copy that shares no slices with m.
func (m Matches) Clone() Matches {
	out := make(Matches, len(m))
	for k, files := range m {
		out[k] = append([]string(nil), files...)
	}
	return out
}

// Stats counts what the workers did with their chunks.
type Stats struct {
	Workers      int   `json:"workers" yaml:"workers"`
	FilesScanned int64 `json:"files_scanned" yaml:"files_scanned"`
	FilesMissing int64 `json:"files_missing" yaml:"files_missing"`
	FilesFailed  int64 `json:"files_failed" yaml:"files_failed"`
	BytesScanned int64 `json:"bytes_scanned" yaml:"bytes_scanned"`
}

func (s *Stats) Add(o Stats) {
	s.FilesScanned += o.FilesScanned
	s.FilesMissing += o.FilesMissing
	s.FilesFailed += o.FilesFailed
	s.BytesScanned += o.BytesScanned
}

// Result is the outcome of one search run.
type Result struct {
	Matches   Matches
	Stats     Stats
	Files     int
	Keywords  []string
	StartTime time.Time
	EndTime   time.Time
}

func (r *Result) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
