package detectors

import "strings"

// KeywordDetector matches keywords as case-sensitive literal substrings.
// It is read-only after construction and safe to share between workers.
type KeywordDetector struct {
	keywords []string
}

// NewKeywordDetector keeps the first occurrence of each keyword, in input order.
func NewKeywordDetector(keywords []string) *KeywordDetector {
	seen := make(map[string]bool, len(keywords))
	uniq := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		uniq = append(uniq, kw)
	}
	return &KeywordDetector{keywords: uniq}
}

func (d *KeywordDetector) Keywords() []string {
	return d.keywords
}

// Detect returns the indexes of keywords found in line, skipping those already marked in seen.
// Newly found keywords are marked.
func (d *KeywordDetector) Detect(line string, seen []bool) []int {
	var hits []int
	for i, kw := range d.keywords {
		if seen[i] {
			continue
		}
		if strings.Contains(line, kw) {
			seen[i] = true
			hits = append(hits, i)
		}
	}
	return hits
}

// FileMatch tracks which keywords were already recorded for a single file.
type FileMatch struct {
	d         *KeywordDetector
	seen      []bool
	remaining int
}

func (d *KeywordDetector) NewFileMatch() *FileMatch {
	return &FileMatch{
		d:         d,
		seen:      make([]bool, len(d.keywords)),
		remaining: len(d.keywords),
	}
}

// Observe returns the keywords seen for the first time in this file.
func (m *FileMatch) Observe(line string) []string {
	if m.remaining == 0 {
		return nil
	}
	hits := m.d.Detect(line, m.seen)
	if len(hits) == 0 {
		return nil
	}
	found := make([]string, len(hits))
	for i, idx := range hits {
		found[i] = m.d.keywords[idx]
	}
	m.remaining -= len(hits)
	return found
}

// Complete reports whether every keyword has been found, so the rest of the file can be skipped.
func (m *FileMatch) Complete() bool {
	return m.remaining == 0
}
