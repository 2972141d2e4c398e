package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/vstore/internal/kvstore/kvstoretest"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Conformance(t *testing.T) {
	kvstoretest.Run(t, openTestStore(t, filepath.Join(t.TempDir(), "ledger.db")))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	// ARRANGE
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "currency.gems.balance", "42"))
	require.NoError(t, first.Close())

	// ACT
	second := openTestStore(t, path)
	v, ok, err := second.Get(ctx, "currency.gems.balance")

	// ASSERT
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42", v)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}
