// Package file implements the ledger store as a single JSON document on
// the local filesystem.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

// Store persists the ledger as one human-inspectable JSON file. Writes go
// through a temp file plus rename so a crash mid-write can never leave a
// torn document behind.
type Store struct {
	path string
	log  *zap.Logger
}

// New creates a file store at the given path, creating parent directories
// as needed.
func New(path string, log *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &Store{path: path, log: log}, nil
}

// Load reads the stored document. A missing file reports the slot as
// absent; unreadable or malformed content surfaces as an error, which the
// ledger treats the same way.
func (s *Store) Load(ctx context.Context) (*domain.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}
	return &ledger, nil
}

// Save writes the full document atomically.
func (s *Store) Save(ctx context.Context, ledger *domain.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}

	s.log.Debug("Ledger persisted",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)))

	return nil
}

// Close is a no-op; the store holds no open handles between operations.
func (s *Store) Close() error {
	return nil
}
