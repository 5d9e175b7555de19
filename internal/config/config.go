package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Workers int `yaml:"workers"`

	// Encoding is "utf-8", "auto" (sniffed per file) or any WHATWG label such as "windows-1252".
	Encoding     string `yaml:"encoding"`
	MaxLineBytes int    `yaml:"max_line_bytes"`

	DBPath string `yaml:"db_path"`
	// ReportDir is where relative report file names are written.
	ReportDir string `yaml:"report_dir"`

	// KeywordsPath is the line-oriented keyword list used by --keywords-file and the review server.
	KeywordsPath string `yaml:"keywords_path"`

	Verbose   bool   `yaml:"verbose"`
	Quiet     bool   `yaml:"quiet"`
	LogFormat string `yaml:"log_format"`
}

func DefaultConfig() *Config {
	return &Config{
		Workers:      4,
		Encoding:     "utf-8",
		MaxLineBytes: 1024 * 1024,
		DBPath:       "kwsearch.db",
		ReportDir:    ".",
		KeywordsPath: "keywords.txt",
		LogFormat:    "json",
	}
}

// Load overlays the YAML file at path onto the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that the search itself does not validate.
func (c *Config) Validate() error {
	if c.MaxLineBytes <= 0 {
		return fmt.Errorf("max_line_bytes must be positive, got %d", c.MaxLineBytes)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
