package store

import (
	"context"
	"sync"

	"visa-bot/internal/models"
)

// MemoryStore holds records for the lifetime of the process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[models.Identity]*models.FormRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[models.Identity]*models.FormRecord)}
}

func (s *MemoryStore) Get(_ context.Context, id models.Identity) (*models.FormRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Set(_ context.Context, rec *models.FormRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.Identity] = rec.Clone()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, id models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Health(context.Context) error { return nil }
