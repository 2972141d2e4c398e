package handler

import "net/http"

// Purger drops cached kv entries so reads go back to the backing store
type Purger interface {
	Purge()
}

// HandlePurgeCache empties the read cache, e.g. after the store was reset
// by another process. A nil cache answers OK with nothing to do.
func HandlePurgeCache(cache Purger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cache == nil {
			respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCacheDisabled})
			return
		}
		cache.Purge()
		loggerFor(r).Info(LogMsgCachePurged)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCachePurged})
	}
}
