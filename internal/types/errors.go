package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrEmptyDataset   = errors.New("dataset contains no comments")
	ErrDuplicate      = errors.New("duplicate comment ID")
	ErrNoCSVFound     = errors.New("no comment CSV file found")
	ErrCrawlStopped   = errors.New("crawl has been stopped")
	ErrMissingHeader  = errors.New("CSV header row missing or unrecognized")
	ErrLoginTimeout   = errors.New("login wait timed out")
	ErrNoCommentPanel = errors.New("comment panel not found on page")
	ErrEmptyKeyword   = errors.New("search keyword is empty")
)

// NormalizeError wraps a problem with one raw record. The pipeline never
// propagates these as fatal; they are logged and counted.
type NormalizeError struct {
	Position int
	Field    string
	Err      error
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("normalize error at record %d (field=%q): %v", e.Position, e.Field, e.Err)
}

func (e *NormalizeError) Unwrap() error { return e.Err }

// StorageError wraps errors that occur during storage/export.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ScrapeError wraps errors from the browser collaborator.
type ScrapeError struct {
	Stage string // launch, navigate, scroll, capture, extract, search
	Err   error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("scrape error at stage %q: %v", e.Stage, e.Err)
}

func (e *ScrapeError) Unwrap() error { return e.Err }
