// Package store defines the entry store contract shared by the memory, sqlite
// and remote implementations.
package store

import (
	"context"
	"fmt"

	"pulse-insights-go/internal/types"
)

const (
	SortNewestFirst = "-submission_time"
	SortOldestFirst = "submission_time"

	DashboardLimit = 50
	AnalyticsLimit = 100
)

type ListOptions struct {
	Sort  string // SortNewestFirst (default) | SortOldestFirst
	Limit int    // <= 0 means no limit
}

// Newest reports whether the options ask for descending submission time.
func (o ListOptions) Newest() bool { return o.Sort != SortOldestFirst }

func (o ListOptions) Validate() error {
	switch o.Sort {
	case "", SortNewestFirst, SortOldestFirst:
		return nil
	default:
		return fmt.Errorf("unsupported sort %q", o.Sort)
	}
}

// Store lists and creates pulse entries. Entries are never updated or deleted.
type Store interface {
	List(ctx context.Context, opts ListOptions) ([]types.PulseEntry, error)
	Create(ctx context.Context, entry types.PulseEntry) (types.PulseEntry, error)
}

// Error is the opaque failure of a store operation.
type Error struct {
	Op  string // "list" | "create"
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("entry store %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
