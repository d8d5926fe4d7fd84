// Package localstore implements the durable local-storage persistence
// mode: the whole collection lives in memory and is re-serialized to a
// single JSON file after every successful mutation.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"kharcha/internal/core"
)

// Store owns the in-memory collection. The slice is never reachable
// from outside; callers only see copies.
type Store struct {
	mu    sync.Mutex
	path  string
	items []core.Expense
}

// Open loads the collection from path. A missing file is an empty
// collection; an unreadable or corrupt file is core.ErrUnavailable.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrUnavailable, path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", core.ErrUnavailable, path, err)
	}
	return s, nil
}

// List implements backend.Store.
func (s *Store) List(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

// Add implements backend.Store.
func (s *Store) Add(_ context.Context, draft core.Draft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:       uuid.NewString(),
		Name:     draft.Name,
		Amount:   draft.Amount,
		Category: draft.Category,
		Date:     draft.Date,
		Paid:     false,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	if err := s.persistLocked(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return core.Expense{}, err
	}
	return e, nil
}

// SetPaid implements backend.Store.
func (s *Store) SetPaid(_ context.Context, id string, paid bool) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		prev := s.items[i].Paid
		s.items[i].Paid = paid
		if err := s.persistLocked(); err != nil {
			s.items[i].Paid = prev
			return core.Expense{}, err
		}
		return s.items[i], nil
	}
	return core.Expense{}, core.ErrNotFound
}

// Remove implements backend.Store. Removing an absent id succeeds.
func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		removed := s.items[i]
		s.items = append(s.items[:i], s.items[i+1:]...)
		if err := s.persistLocked(); err != nil {
			s.items = append(s.items[:i], append([]core.Expense{removed}, s.items[i:]...)...)
			return err
		}
		return nil
	}
	return nil
}

// Replace swaps the whole collection and persists it, used by the
// mirror worker's full resync.
func (s *Store) Replace(_ context.Context, items []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.items
	s.items = append([]core.Expense(nil), items...)
	if err := s.persistLocked(); err != nil {
		s.items = prev
		return err
	}
	return nil
}

// Put inserts or overwrites a record keeping insertion order, used by
// the mirror worker when applying add events.
func (s *Store) Put(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == e.ID {
			prev := s.items[i]
			s.items[i] = e
			if err := s.persistLocked(); err != nil {
				s.items[i] = prev
				return err
			}
			return nil
		}
	}
	s.items = append(s.items, e)
	if err := s.persistLocked(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return err
	}
	return nil
}

// persistLocked writes the whole collection atomically: serialize to a
// temp file in the same directory, then rename over the target so a
// partial write is never observable.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode collection: %v", core.ErrUnavailable, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data directory: %v", core.ErrUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", core.ErrUnavailable, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write temp file: %v", core.ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", core.ErrUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace %s: %v", core.ErrUnavailable, s.path, err)
	}
	return nil
}
