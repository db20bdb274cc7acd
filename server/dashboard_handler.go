package server

import (
	"net/http"

	"github.com/rlejr135/band-archive/cache"
	"github.com/rlejr135/band-archive/model"
)

// DashboardStatsHandler returns catalog-wide statistics. Results are cached
// in Redis for a short TTL when available.
func (h *APIHandler) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	if cached := cache.GetDashboardStats(r.Context()); cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	totalSongs, err := h.songRepo.Count()
	if err != nil {
		writeServerError(w, err)
		return
	}

	statusCounts, err := h.songRepo.CountByStatus()
	if err != nil {
		writeServerError(w, err)
		return
	}

	totalLogs, err := h.practiceRepo.Count()
	if err != nil {
		writeServerError(w, err)
		return
	}

	recent, err := h.practiceRepo.Recent(5)
	if err != nil {
		writeServerError(w, err)
		return
	}

	stats := &model.DashboardStats{
		TotalSongs:         totalSongs,
		TotalPracticeLogs:  totalLogs,
		StatusCounts:       statusCounts,
		RecentPracticeLogs: recent,
	}
	cache.SetDashboardStats(r.Context(), stats)
	writeJSON(w, http.StatusOK, stats)
}
