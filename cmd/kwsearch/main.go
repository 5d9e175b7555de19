package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/digimosa/kwsearch/internal/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "kwsearch",
		Usage: "search files for keywords with a pool of workers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "kwsearch.yaml", Usage: "YAML config file (optional)"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database for run history"},
			&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
			&cli.BoolFlag{Name: "quiet", Usage: "Only log errors"},
			&cli.StringFlag{Name: "log-format", Usage: "Log format: json or text"},
		},
		Commands: []*cli.Command{
			searchCommand(),
			historyCommand(),
			serveCommand(),
		},
	}
}

// loadConfig layers defaults, the config file and then any flags set on the command line.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("encoding") {
		cfg.Encoding = c.String("encoding")
	}
	if c.IsSet("max-line-bytes") {
		cfg.MaxLineBytes = c.Int("max-line-bytes")
	}
	if c.IsSet("report-dir") {
		cfg.ReportDir = c.String("report-dir")
	}
	if c.IsSet("keywords-file") {
		cfg.KeywordsPath = c.String("keywords-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	if cfg.Quiet {
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
