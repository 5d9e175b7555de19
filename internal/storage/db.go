package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/digimosa/kwsearch/internal/extractor/detectors"
	"github.com/digimosa/kwsearch/internal/models"
)

const (
	StatusRunning   = "Running"
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
)

var ErrRunNotFound = errors.New("run not found")

type RunModel struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	RunID        string        `gorm:"uniqueIndex" json:"run_id"`
	Status       string        `json:"status"`
	Error        string        `json:"error,omitempty"`
	Workers      int           `json:"workers"`
	Keywords     []string      `gorm:"serializer:json" json:"keywords"`
	Files        int           `json:"files"`
	FilesScanned int64         `json:"files_scanned"`
	FilesMissing int64         `json:"files_missing"`
	FilesFailed  int64         `json:"files_failed"`
	BytesScanned int64         `json:"bytes_scanned"`
	Pairs        int           `json:"pairs"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Duration     time.Duration `json:"duration"`
	Hits         []HitModel    `gorm:"foreignKey:RunModelID" json:"hits,omitempty"`
}

type HitModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RunModelID uint      `gorm:"index" json:"-"`
	Keyword    string    `gorm:"index" json:"keyword"`
	FilePath   string    `json:"file_path"`
	CreatedAt  time.Time `json:"created_at"`
}

// DB stores the history of search runs.
type DB struct {
	gorm *gorm.DB
}

func Open(path string) (*DB, error) {
	g, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := g.AutoMigrate(&RunModel{}, &HitModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &DB{gorm: g}, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateRun records a running search. Repeated keywords are stored once, in first-seen order.
func (db *DB) CreateRun(workers int, keywords []string, files int) (*RunModel, error) {
	r := &RunModel{
		RunID:     uuid.NewString(),
		Status:    StatusRunning,
		Workers:   workers,
		Keywords:  detectors.NewKeywordDetector(keywords).Keywords(),
		Files:     files,
		StartTime: time.Now(),
	}
	return r, db.gorm.Create(r).Error
}

// CompleteRun stores the run totals and one hit row per (keyword, file) in one transaction.
func (db *DB) CompleteRun(r *RunModel, res *models.Result) error {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Status = StatusCompleted
	r.FilesScanned = res.Stats.FilesScanned
	r.FilesMissing = res.Stats.FilesMissing
	r.FilesFailed = res.Stats.FilesFailed
	r.BytesScanned = res.Stats.BytesScanned
	r.Pairs = res.Matches.Pairs()

	hits := make([]HitModel, 0, r.Pairs)
	for _, kw := range res.Matches.Keywords() {
		for _, path := range res.Matches[kw] {
			hits = append(hits, HitModel{
				RunModelID: r.ID,
				Keyword:    kw,
				FilePath:   path,
				CreatedAt:  r.EndTime,
			})
		}
	}

	return db.gorm.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(r).
			Select("EndTime", "Duration", "Status", "FilesScanned", "FilesMissing", "FilesFailed", "BytesScanned", "Pairs").
			Updates(r).Error
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			return nil
		}
		return tx.CreateInBatches(hits, 500).Error
	})
}

func (db *DB) FailRun(r *RunModel, cause error) error {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Status = StatusFailed
	r.Error = cause.Error()
	return db.gorm.Model(r).Select("EndTime", "Duration", "Status", "Error").Updates(r).Error
}

func (db *DB) GetAllRuns() ([]RunModel, error) {
	var runs []RunModel
	err := db.gorm.Order("start_time desc").Find(&runs).Error
	return runs, err
}

// GetRun loads a run and its hits by run id.
func (db *DB) GetRun(runID string) (*RunModel, error) {
	var r RunModel
	err := db.gorm.Preload("Hits", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("keyword, file_path")
	}).First(&r, "run_id = ?", runID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// HitsFor returns the stored result mapping of a run.
func (r *RunModel) HitsFor() models.Matches {
	m := make(models.Matches)
	for _, h := range r.Hits {
		m[h.Keyword] = append(m[h.Keyword], h.FilePath)
	}
	return m
}
