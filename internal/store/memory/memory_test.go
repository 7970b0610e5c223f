package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoprojetos/funneledger/internal/domain"
)

func TestStore_EmptySlot(t *testing.T) {
	s := New()

	ledger, err := s.Load(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, ledger)
}

func TestStore_Roundtrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	doc := domain.DefaultLedger()
	doc.TotalSessions = 3
	require.NoError(t, s.Save(ctx, doc))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.TotalSessions)
}

func TestStore_IsolatesStoredCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	doc := domain.DefaultLedger()
	require.NoError(t, s.Save(ctx, doc))

	// Mutating either side after the save must not leak through the slot.
	doc.TotalSessions = 42
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.TotalSessions)

	loaded.FunnelMetrics[domain.StageQuizLoaded] = 7
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.FunnelMetrics[domain.StageQuizLoaded])
}
