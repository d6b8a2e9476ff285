package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a single-process store for development and tests. A restart
// drops all pending codes, which is acceptable for a single instance: the
// user simply requests a new one.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Phone] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, phone string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[phone]
	if !ok {
		return Record{}, false, nil
	}
	// Mirror the redis store's eviction bound for records nobody consumed.
	if time.Now().After(rec.ExpiresAt.Add(evictionGrace)) {
		delete(s.records, phone)
		return Record{}, false, nil
	}
	return rec, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, phone)
	return nil
}
