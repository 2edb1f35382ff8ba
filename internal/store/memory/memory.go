package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pulse-insights-go/internal/store"
	"pulse-insights-go/internal/types"
)

// Store keeps entries in process. It is the default for local runs and tests.
type Store struct {
	mu      sync.RWMutex
	entries []types.PulseEntry
	now     func() time.Time
}

func NewStore(seed ...types.PulseEntry) *Store {
	s := &Store{now: time.Now}
	for _, e := range seed {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		s.entries = append(s.entries, e)
	}
	return s
}

// List returns entries sorted by submission time, newest first unless asked otherwise.
func (s *Store) List(ctx context.Context, opts store.ListOptions) ([]types.PulseEntry, error) {
	if err := opts.Validate(); err != nil {
		return nil, store.Wrap("list", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("list", err)
	}

	s.mu.RLock()
	cloned := append([]types.PulseEntry(nil), s.entries...)
	s.mu.RUnlock()

	newest := opts.Newest()
	sort.SliceStable(cloned, func(i, j int) bool {
		if newest {
			return cloned[i].SubmissionTime.After(cloned[j].SubmissionTime)
		}
		return cloned[i].SubmissionTime.Before(cloned[j].SubmissionTime)
	})

	if opts.Limit > 0 && opts.Limit < len(cloned) {
		cloned = cloned[:opts.Limit]
	}
	return cloned, nil
}

// Create assigns an ID and, if missing, a submission time.
func (s *Store) Create(ctx context.Context, entry types.PulseEntry) (types.PulseEntry, error) {
	if err := ctx.Err(); err != nil {
		return types.PulseEntry{}, store.Wrap("create", err)
	}
	entry.ID = uuid.NewString()
	if entry.SubmissionTime.IsZero() {
		entry.SubmissionTime = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
