// Package memory implements the ledger store in process memory. It backs
// tests and embeddings that want the ledger without any durable storage.
package memory

import (
	"context"
	"sync"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

// Store keeps the latest saved document in memory. Saved and loaded
// documents are cloned so callers can never share mutable state with
// the slot.
type Store struct {
	mu     sync.Mutex
	ledger *domain.Ledger
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Load returns a copy of the stored document, or (nil, nil) when nothing
// has been saved yet.
func (s *Store) Load(ctx context.Context) (*domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return nil, nil
	}
	return s.ledger.Clone(), nil
}

// Save replaces the slot with a copy of the document.
func (s *Store) Save(ctx context.Context, ledger *domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = ledger.Clone()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
