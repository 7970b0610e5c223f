package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "analytics.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_EmptySlot(t *testing.T) {
	s := openStore(t)

	ledger, err := s.Load(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, ledger)
}

func TestStore_Roundtrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	doc := domain.DefaultLedger()
	doc.TotalSessions = 2
	doc.FunnelMetrics[domain.StageCheckoutClicked] = 5
	require.NoError(t, s.Save(ctx, doc))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 2, loaded.TotalSessions)
	assert.Equal(t, 5, loaded.FunnelMetrics[domain.StageCheckoutClicked])
}

func TestStore_SaveReplacesSlot(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	doc := domain.DefaultLedger()
	doc.TotalSessions = 1
	require.NoError(t, s.Save(ctx, doc))

	doc.TotalSessions = 9
	require.NoError(t, s.Save(ctx, doc))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.TotalSessions)
}

func TestStore_MalformedDocument(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger (key, document) VALUES (?, ?)`, slotKey, "{not json")
	require.NoError(t, err)

	loaded, err := s.Load(ctx)
	assert.Error(t, err)
	assert.Nil(t, loaded)
}
