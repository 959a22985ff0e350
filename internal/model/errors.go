package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSources is returned when the given roots contain no analyzable files.
	ErrNoSources = errors.New("no source files found")
	// ErrUnreadableFile wraps read failures of a single source file.
	ErrUnreadableFile = errors.New("unreadable file")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled by user")
)

// UnknownKindError is returned for file kind names that are not recognised.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown file kind %q", e.Name)
}

// UnknownAnalyzerError is returned for analyzer names that are not recognised.
type UnknownAnalyzerError struct {
	Name string
}

func (e *UnknownAnalyzerError) Error() string {
	return fmt.Sprintf("unknown analyzer %q", e.Name)
}
