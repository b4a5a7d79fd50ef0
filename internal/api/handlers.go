package api

import (
	"encoding/json"
	"net/http"
)

// Handler methods for routerHandlers. Both routes report the read-only
// summary serverauth.Server.Stats computes: /api/state as flat
// top-level fields, /api/stats nested under "sim" alongside the rate
// limiter's statistics under "rateLimiter".

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	stats := h.status.Stats()
	writeJSON(w, map[string]interface{}{
		"playerCount": stats.PlayerCount,
		"aliveCount":  stats.AliveCount,
		"simTick":     stats.SimTick,
		"netTick":     stats.NetTick,
	})
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"sim":         h.status.Stats(),
		"rateLimiter": h.rateLimiter.GetStats(),
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
