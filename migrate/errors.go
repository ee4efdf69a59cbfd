package migrate

import (
	"errors"
	"fmt"
)

// ErrArgument is returned for invalid calls into the engine, e.g. an empty content type.
var ErrArgument = errors.New("migrate: invalid argument")

// ParseError means an item's field couldn't be turned into a DOM.  The item is skipped.
type ParseError struct {
	ItemID string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("migrate: couldn't parse HTML of item %s: %v", e.ItemID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MappingLoadError means the CSV mapping couldn't be read.  The run carries on without it.
type MappingLoadError struct {
	Path string
	Err  error
}

func (e *MappingLoadError) Error() string {
	return fmt.Sprintf("migrate: couldn't load image mappings from %s: %v", e.Path, e.Err)
}

func (e *MappingLoadError) Unwrap() error { return e.Err }

// RemoteCallError wraps a failed fetch, image query or write-back, and records where in the run
// it happened.  Pages written before it stay written.
type RemoteCallError struct {
	Op     string // fetch, query or update
	Page   int    // 1-based
	Offset int    // $skip of the page
	Err    error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("migrate: %s failed on page %d (offset %d): %v", e.Op, e.Page, e.Offset, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }
