package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory archive for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string // insertion order of IDs, oldest first
}

// NewMemoryStore creates an empty in-memory archive.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Put stores a record, replacing any existing record with the same ID.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == rec.ID })
	}
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// GetByGraphHash retrieves the most recently stored record for a hash.
func (s *MemoryStore) GetByGraphHash(ctx context.Context, hash string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		if rec := s.records[s.order[i]]; rec.GraphHash == hash {
			return rec, nil
		}
	}
	return nil, ErrNotFound
}

// List returns up to limit records, most recent first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Record
	for i := len(s.order) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, s.records[s.order[i]])
	}
	return out, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; ok {
		delete(s.records, id)
		s.order = slices.DeleteFunc(s.order, func(x string) bool { return x == id })
	}
	return nil
}

// Close drops all records.
func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*Record)
	s.order = nil
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
