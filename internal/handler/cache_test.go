package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	purged int
}

func (p *countingPurger) Purge() { p.purged++ }

func TestHandlePurgeCache(t *testing.T) {
	t.Run("purges the cache", func(t *testing.T) {
		cache := &countingPurger{}
		w := httptest.NewRecorder()

		HandlePurgeCache(cache).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/cache/purge", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, cache.purged)
		var resp SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, MsgCachePurged, resp.Message)
	})

	t.Run("no cache configured", func(t *testing.T) {
		w := httptest.NewRecorder()

		HandlePurgeCache(nil).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/cache/purge", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgCacheDisabled)
	})
}
