package search

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWorkers = errors.New("worker count must be positive")
	ErrEmptyKeyword   = errors.New("keyword must not be empty")
)

// ConfigError is the only error Run returns for bad input. It is raised before any worker starts.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration (%s): %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type FileErrorKind int

const (
	// MissingFile means the path does not exist or could not be opened.
	MissingFile FileErrorKind = iota
	// ReadFailure means the file was opened but reading it failed part way.
	ReadFailure
)

func (k FileErrorKind) String() string {
	switch k {
	case MissingFile:
		return "missing_file"
	case ReadFailure:
		return "read_failure"
	default:
		return "unknown"
	}
}

// FileError describes a per-file failure. Workers log and count these; they never reach the caller.
type FileError struct {
	Path string
	Kind FileErrorKind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
