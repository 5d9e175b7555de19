package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/digimosa/kwsearch/internal/extractor/detectors"
	"github.com/digimosa/kwsearch/internal/reporting"
	"github.com/digimosa/kwsearch/internal/search"
	"github.com/digimosa/kwsearch/internal/server"
	"github.com/digimosa/kwsearch/internal/storage"
	"github.com/digimosa/kwsearch/internal/wordlist"
)

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search files and directories for keywords",
		ArgsUsage: "<path> [path...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "keyword", Aliases: []string{"k"}, Usage: "Keyword to search for (repeatable)"},
			&cli.StringFlag{Name: "keywords-file", Usage: "File with one keyword per line"},
			&cli.StringFlag{Name: "files-from", Usage: "File with one path per line, added to the arguments"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: search.DefaultWorkers, Usage: "Number of workers"},
			&cli.StringFlag{Name: "encoding", Usage: "Text encoding: utf-8, auto or a charset label"},
			&cli.IntFlag{Name: "max-line-bytes", Usage: "Longest line accepted before a file is abandoned"},
			&cli.StringFlag{Name: "json", Usage: "Write the report as JSON to this file"},
			&cli.StringFlag{Name: "yaml", Usage: "Write the report as YAML to this file"},
			&cli.StringFlag{Name: "html", Usage: "Write the report as HTML to this file"},
			&cli.StringFlag{Name: "report-dir", Usage: "Directory for relative --json, --yaml and --html paths"},
			&cli.BoolFlag{Name: "no-db", Usage: "Do not record the run in the history database"},
			&cli.BoolFlag{Name: "serve", Usage: "Start the review server after the search"},
			&cli.StringFlag{Name: "port", Value: "8080", Usage: "Port for the review server"},
		},
		Action: searchAction,
	}
}

func searchAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	logger := newLogger(cfg)

	kwList, err := wordlist.Load(cfg.KeywordsPath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load keywords: %v", err), 2)
	}
	keywords := c.StringSlice("keyword")
	if len(keywords) == 0 || c.IsSet("keywords-file") {
		keywords = append(keywords, kwList.Items()...)
	}
	if len(keywords) == 0 {
		return cli.Exit("no keywords given: use -k or --keywords-file", 2)
	}
	keywords = detectors.NewKeywordDetector(keywords).Keywords()

	paths := c.Args().Slice()
	if c.IsSet("files-from") {
		list, err := wordlist.Load(c.String("files-from"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to load file list: %v", err), 2)
		}
		paths = append(paths, list.Items()...)
	}
	if len(paths) == 0 {
		return cli.Exit("no paths given", 2)
	}

	coord, err := search.NewCoordinator(search.Options{
		Workers:      cfg.Workers,
		Encoding:     cfg.Encoding,
		MaxLineBytes: cfg.MaxLineBytes,
		Logger:       logger,
	})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	files := search.UniquePaths(coord.ExpandPaths(paths))

	var db *storage.DB
	if !c.Bool("no-db") {
		db, err = storage.Open(cfg.DBPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to initialize database: %v", err), 2)
		}
		defer db.Close()
	}

	runID := uuid.NewString()
	var run *storage.RunModel
	if db != nil {
		run, err = db.CreateRun(cfg.Workers, keywords, len(files))
		if err != nil {
			logger.Error("failed to create run record", "error", err)
		} else {
			runID = run.RunID
		}
	}

	fmt.Printf("Searching %d file(s) for %d keyword(s) with %d worker(s)\n", len(files), len(keywords), cfg.Workers)
	start := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := coord.Run(ctx, files, keywords)
	if err != nil {
		if db != nil && run != nil {
			if ferr := db.FailRun(run, err); ferr != nil {
				logger.Error("failed to record failed run", "error", ferr)
			}
		}
		var cfgErr *search.ConfigError
		if errors.As(err, &cfgErr) {
			return cli.Exit(err.Error(), 2)
		}
		return err
	}

	if db != nil && run != nil {
		if err := db.CompleteRun(run, res); err != nil {
			logger.Error("failed to save run", "error", err)
		}
	}

	report := reporting.NewReport(runID, res)
	if err := report.WriteText(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("\nSearch complete in %s: %d keyword/file pair(s), %s scanned, %d missing, %d failed\n",
		time.Since(start).Round(time.Millisecond),
		res.Matches.Pairs(),
		humanize.Bytes(uint64(res.Stats.BytesScanned)),
		res.Stats.FilesMissing,
		res.Stats.FilesFailed)

	saveReport(reportPath(cfg.ReportDir, c.String("json")), "JSON", report.SaveJSON)
	saveReport(reportPath(cfg.ReportDir, c.String("yaml")), "YAML", report.SaveYAML)
	saveReport(reportPath(cfg.ReportDir, c.String("html")), "HTML", report.SaveHTML)

	if c.Bool("serve") {
		if db == nil {
			return cli.Exit("--serve needs the history database, drop --no-db", 2)
		}
		srv := server.NewServer(report, db, kwList, logger)
		addr := fmt.Sprintf("0.0.0.0:%s", c.String("port"))
		fmt.Printf("\n[SERVER] Starting review server at http://localhost:%s\n", c.String("port"))
		fmt.Println("Press Ctrl+C to stop")
		return srv.Start(addr)
	}
	return nil
}

func saveReport(path, kind string, save func(string) error) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Printf("Error saving %s report: %v\n", kind, err)
		return
	}
	if err := save(path); err != nil {
		fmt.Printf("Error saving %s report: %v\n", kind, err)
		return
	}
	fmt.Printf("%s report saved to: %s\n", kind, path)
}

// reportPath resolves a relative report file name against the configured report directory.
func reportPath(dir, name string) string {
	if name == "" || dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
