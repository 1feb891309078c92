package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileStore persists credential records as a JSON document on disk so that
// tokens survive process restarts. The whole file is read and rewritten on
// each mutation; credential sets are small, so simplicity wins over
// incremental updates.
//
// A missing file is an empty store. An unreadable or corrupt file is a
// store failure and surfaces as ErrStoreUnavailable, never as "not found".
type FileStore struct {
	mu   sync.Mutex
	path string

	now func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by the JSON file at path. The file and
// its parent directory are created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string { return s.path }

// Find implements Store. A hit touches LastAccessed and persists it.
func (s *FileStore) Find(ctx context.Context, clientName, flow, clientID, userIdentifier string) (*Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, false, err
	}
	rec := selectRecord(records, clientName, flow, clientID, userIdentifier)
	if rec == nil {
		return nil, false, nil
	}
	rec.LastAccessed = s.now()
	if err := s.save(records); err != nil {
		return nil, false, err
	}
	return rec.Clone(), true, nil
}

// Upsert implements Store.
func (s *FileStore) Upsert(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	clone := rec.Clone()
	clone.LastAccessed = s.now()

	replaced := false
	for i, existing := range records {
		if existing.Identity == clone.Identity {
			records[i] = clone
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, clone)
	}
	return s.save(records)
}

// Remove implements Store. An empty filter removes every record.
func (s *FileStore) Remove(ctx context.Context, f Filter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return 0, err
	}
	kept := records[:0]
	removed := 0
	for _, rec := range records {
		if f.Matches(rec.Identity) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// List implements Store. Summaries are ordered most recently accessed first.
func (s *FileStore) List(ctx context.Context, f Filter) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	var out []Summary
	for _, rec := range records {
		if f.Matches(rec.Identity) {
			out = append(out, rec.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastAccessed.After(out[j].LastAccessed)
	})
	return out, nil
}

func (s *FileStore) load() ([]*Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnavailable, s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrStoreUnavailable, s.path, err)
	}
	return records, nil
}

func (s *FileStore) save(records []*Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding records: %v", ErrStoreUnavailable, err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrStoreUnavailable, dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: staging write: %v", ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrStoreUnavailable, tmpName, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: securing %s: %v", ErrStoreUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing %s: %v", ErrStoreUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing %s: %v", ErrStoreUnavailable, s.path, err)
	}
	return nil
}
