// Package store defines the single-slot persistence contract for the
// ledger document and houses its local backends.
package store

import (
	"context"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

// LedgerStore persists the entire ledger document in one logical slot.
// Save replaces the slot atomically; readers of the underlying storage
// never observe a partially written document.
type LedgerStore interface {
	// Load reads the stored document. A (nil, nil) return means the slot
	// is absent; callers substitute the default document. Implementations
	// may also surface malformed content as an error, which callers treat
	// the same as absence.
	Load(ctx context.Context) (*domain.Ledger, error)

	// Save writes the full document, replacing any previous content.
	Save(ctx context.Context, ledger *domain.Ledger) error

	// Close releases any resources held by the store.
	Close() error
}
