package tokens

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-process Store. It is safe for concurrent use and is
// the natural choice for tests and short-lived tools that do not need
// credentials to outlive the process.
type MemoryStore struct {
	mu      sync.Mutex
	records map[Identity]*Record

	now func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[Identity]*Record),
		now:     time.Now,
	}
}

// Find implements Store. A hit touches the record's LastAccessed timestamp.
func (s *MemoryStore) Find(ctx context.Context, clientName, flow, clientID, userIdentifier string) (*Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := selectRecord(s.snapshotLocked(), clientName, flow, clientID, userIdentifier)
	if rec == nil {
		return nil, false, nil
	}
	stored := s.records[rec.Identity]
	stored.LastAccessed = s.now()
	return stored.Clone(), true, nil
}

// Upsert implements Store.
func (s *MemoryStore) Upsert(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := rec.Clone()
	clone.LastAccessed = s.now()
	s.records[clone.Identity] = clone
	return nil
}

// Remove implements Store. An empty filter removes every record.
func (s *MemoryStore) Remove(ctx context.Context, f Filter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id := range s.records {
		if f.Matches(id) {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}

// List implements Store. Summaries are ordered most recently accessed first.
func (s *MemoryStore) List(ctx context.Context, f Filter) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Summary
	for id, rec := range s.records {
		if f.Matches(id) {
			out = append(out, rec.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastAccessed.After(out[j].LastAccessed)
	})
	return out, nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *MemoryStore) snapshotLocked() []*Record {
	snapshot := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		snapshot = append(snapshot, rec)
	}
	return snapshot
}
