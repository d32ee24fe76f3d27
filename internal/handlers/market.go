package handlers

import (
	"context"
	"net/http"
)

// Market serves the aggregate snapshot: quotes, trending, funding, intel and
// the initially selected asset. The first request (or ?refresh=1) triggers a
// full refresh; the refresh joins all four sources before responding.
func (a *API) Market(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "1"
	if !force {
		if snap, ok := a.agg.Snapshot(); ok {
			writeJSON(w, http.StatusOK, snap)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
	defer cancel()
	writeJSON(w, http.StatusOK, a.agg.Refresh(ctx))
}

// Intel serves just the intel slice of the current snapshot.
func (a *API) Intel(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.agg.Snapshot()
	if !ok {
		ctx, cancel := context.WithTimeout(r.Context(), a.cfg.RequestTimeout)
		defer cancel()
		snap = a.agg.Refresh(ctx)
	}
	writeJSON(w, http.StatusOK, snap.Intel)
}
