package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/digimosa/kwsearch/internal/models"
	"github.com/digimosa/kwsearch/internal/reporting"
	"github.com/digimosa/kwsearch/internal/storage"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded search runs, or show the hits of one run",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Run id to show"},
		},
		Action: historyAction,
	}
}

func historyAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open database: %v", err), 2)
	}
	defer db.Close()

	if id := c.String("id"); id != "" {
		run, err := db.GetRun(id)
		if errors.Is(err, storage.ErrRunNotFound) {
			return cli.Exit(fmt.Sprintf("run %s not found", id), 1)
		}
		if err != nil {
			return err
		}
		return reporting.NewReport(run.RunID, runResult(run)).WriteText(c.App.Writer)
	}

	runs, err := db.GetAllRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.App.Writer, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(c.App.Writer, "%s  %s  %-9s  workers=%d files=%d pairs=%d scanned=%s  [%s]\n",
			r.RunID,
			r.StartTime.Format(time.DateTime),
			r.Status,
			r.Workers,
			r.Files,
			r.Pairs,
			humanize.Bytes(uint64(r.BytesScanned)),
			strings.Join(r.Keywords, ", "))
	}
	return nil
}

// runResult rebuilds a search result from a stored run so it can be reported again.
func runResult(r *storage.RunModel) *models.Result {
	return &models.Result{
		Matches:  r.HitsFor(),
		Keywords: r.Keywords,
		Files:    r.Files,
		Stats: models.Stats{
			Workers:      r.Workers,
			FilesScanned: r.FilesScanned,
			FilesMissing: r.FilesMissing,
			FilesFailed:  r.FilesFailed,
			BytesScanned: r.BytesScanned,
		},
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
