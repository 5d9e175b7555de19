package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/digimosa/kwsearch/internal/reporting"
	"github.com/digimosa/kwsearch/internal/server"
	"github.com/digimosa/kwsearch/internal/storage"
	"github.com/digimosa/kwsearch/internal/wordlist"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the latest completed run, the run history and the keyword list",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Value: "8080", Usage: "Port for the review server"},
			&cli.StringFlag{Name: "keywords-file", Usage: "Keyword list managed from the web UI"},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := newLogger(cfg)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open database: %v", err), 2)
	}
	defer db.Close()

	kwList, err := wordlist.Load(cfg.KeywordsPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load keywords: %v", err), 2)
	}

	latest, err := latestReport(db)
	if err != nil {
		return err
	}

	srv := server.NewServer(latest, db, kwList, logger)
	fmt.Printf("[SERVER] Starting review server at http://localhost:%s\n", c.String("port"))
	return srv.Start(fmt.Sprintf("0.0.0.0:%s", c.String("port")))
}

// latestReport returns the newest completed run as a report, or nil if there is none.
func latestReport(db *storage.DB) (*reporting.Report, error) {
	runs, err := db.GetAllRuns()
	if err != nil {
		return nil, err
	}
	for _, r := range runs {
		if r.Status != storage.StatusCompleted {
			continue
		}
		run, err := db.GetRun(r.RunID)
		if err != nil {
			return nil, err
		}
		return reporting.NewReport(run.RunID, runResult(run)), nil
	}
	return nil, nil
}
