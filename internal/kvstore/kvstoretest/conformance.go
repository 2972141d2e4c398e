// Package kvstoretest holds behaviour checks shared by every kvstore.Store implementation.
package kvstoretest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/vstore/internal/kvstore"
)

// Run exercises the Store contract against a fresh, empty store
func Run(t *testing.T, s kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		v, ok, err := s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "currency.gems.balance", "10"))
		v, ok, err := s.Get(ctx, "currency.gems.balance")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "10", v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "currency.gems.balance", "25"))
		v, _, err := s.Get(ctx, "currency.gems.balance")
		require.NoError(t, err)
		assert.Equal(t, "25", v)
	})

	t.Run("prefix listing is ordered and filtered", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "good.sword.balance", "1"))
		require.NoError(t, s.Set(ctx, "good.axe.balance", "2"))
		require.NoError(t, s.Set(ctx, "other.key", "x"))

		keys, err := s.KeysWithPrefix(ctx, "good.")
		require.NoError(t, err)
		assert.Equal(t, []string{"good.axe.balance", "good.sword.balance"}, keys)

		all, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "other.key"))
		require.NoError(t, s.Delete(ctx, "never.existed"))
		_, ok, err := s.Get(ctx, "other.key")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete with prefix", func(t *testing.T) {
		removed, err := kvstore.DeleteWithPrefix(ctx, s, "good.", "currency.")
		require.NoError(t, err)
		assert.Equal(t, 3, removed)
		all, err := s.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
