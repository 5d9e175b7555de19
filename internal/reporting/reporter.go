package reporting

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/digimosa/kwsearch/internal/models"
	"github.com/digimosa/kwsearch/internal/templates"
)

type Summary struct {
	RunID           string        `json:"run_id" yaml:"run_id"`
	Files           int           `json:"files" yaml:"files"`
	Keywords        int           `json:"keywords" yaml:"keywords"`
	KeywordsMatched int           `json:"keywords_matched" yaml:"keywords_matched"`
	Pairs           int           `json:"pairs" yaml:"pairs"`
	Workers         int           `json:"workers" yaml:"workers"`
	FilesScanned    int64         `json:"files_scanned" yaml:"files_scanned"`
	FilesMissing    int64         `json:"files_missing" yaml:"files_missing"`
	FilesFailed     int64         `json:"files_failed" yaml:"files_failed"`
	BytesScanned    int64         `json:"bytes_scanned" yaml:"bytes_scanned"`
	BytesHuman      string        `json:"bytes_human" yaml:"bytes_human"`
	ScanDuration    time.Duration `json:"scan_duration" yaml:"-"`
	Duration        string        `json:"duration" yaml:"duration"`
	StartTime       time.Time     `json:"start_time" yaml:"start_time"`
	EndTime         time.Time     `json:"end_time" yaml:"end_time"`
}

// KeywordHits lists the files for one keyword, sorted for stable output.
type KeywordHits struct {
	Keyword string   `json:"keyword" yaml:"keyword"`
	Files   []string `json:"files" yaml:"files"`
}

type Report struct {
	Summary  Summary       `json:"summary" yaml:"summary"`
	Keywords []KeywordHits `json:"keywords" yaml:"keywords"`
}

// NewReport lists every searched keyword, matched or not, in search order.
func NewReport(runID string, res *models.Result) *Report {
	r := &Report{
		Summary: Summary{
			RunID:        runID,
			Files:        res.Files,
			Keywords:     len(res.Keywords),
			Pairs:        res.Matches.Pairs(),
			Workers:      res.Stats.Workers,
			FilesScanned: res.Stats.FilesScanned,
			FilesMissing: res.Stats.FilesMissing,
			FilesFailed:  res.Stats.FilesFailed,
			BytesScanned: res.Stats.BytesScanned,
			BytesHuman:   humanize.Bytes(uint64(res.Stats.BytesScanned)),
			ScanDuration: res.Duration(),
			Duration:     res.Duration().Round(time.Millisecond).String(),
			StartTime:    res.StartTime,
			EndTime:      res.EndTime,
		},
		Keywords: make([]KeywordHits, 0, len(res.Keywords)),
	}

	for _, kw := range res.Keywords {
		files := append([]string{}, res.Matches[kw]...)
		sort.Strings(files)
		if len(files) > 0 {
			r.Summary.KeywordsMatched++
		}
		r.Keywords = append(r.Keywords, KeywordHits{Keyword: kw, Files: files})
	}
	return r
}

// WriteText prints one line per keyword, the format used by the CLI.
func (r *Report) WriteText(w io.Writer) error {
	for _, k := range r.Keywords {
		if len(k.Files) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "[FOUND] %s: %d file(s)\n", k.Keyword, len(k.Files)); err != nil {
			return err
		}
		for _, f := range k.Files {
			if _, err := fmt.Fprintf(w, "  - %s\n", f); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Report) SaveJSON(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func (r *Report) SaveYAML(filename string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

func (r *Report) SaveHTML(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return r.RenderHTML(file)
}

func (r *Report) RenderHTML(w io.Writer) error {
	tmpl, err := template.New("report").Parse(templates.ReportHTML)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
