// Package sqlite implements the ledger store as a single-row key-value
// slot in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

// slotKey is the fixed key of the one slot this store manages.
const slotKey = "funnel_analytics"

const schema = `
CREATE TABLE IF NOT EXISTS ledger (
	key      TEXT PRIMARY KEY,
	document TEXT NOT NULL
);
`

// Store persists the ledger document as JSON text in a single SQLite row.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path and initializes the schema.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize sqlite schema: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Load reads the stored document. A missing row reports the slot as
// absent; malformed document text surfaces as an error.
func (s *Store) Load(ctx context.Context) (*domain.Ledger, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM ledger WHERE key = ?`, slotKey).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger row: %w", err)
	}

	var ledger domain.Ledger
	if err := json.Unmarshal([]byte(doc), &ledger); err != nil {
		return nil, fmt.Errorf("failed to parse stored ledger: %w", err)
	}
	return &ledger, nil
}

// Save replaces the slot with the full document in one statement.
func (s *Store) Save(ctx context.Context, ledger *domain.Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ledger (key, document) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET document = excluded.document`,
		slotKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to write ledger row: %w", err)
	}

	s.log.Debug("Ledger persisted", zap.Int("bytes", len(data)))
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
