package handlers

import (
	"net/http"

	"github.com/alumninet/alumninet-be/internal/monitoring"
)

// SystemHandler serves host monitoring data.
type SystemHandler struct {
	stats *monitoring.StatUpdater
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(stats *monitoring.StatUpdater) *SystemHandler {
	return &SystemHandler{stats: stats}
}

// GetStats returns the latest host resource snapshot.
func (h *SystemHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.stats.Snapshot()
	if !ok {
		respondMessage(w, http.StatusServiceUnavailable, "Stats not sampled yet")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
