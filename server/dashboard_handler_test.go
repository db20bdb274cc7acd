package server

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rlejr135/band-archive/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.songs.Create(&model.Song{Title: "Creep", Artist: "Radiohead", Status: model.StatusPractice}))
	require.NoError(t, env.songs.Create(&model.Song{Title: "Zombie", Artist: "The Cranberries", Status: model.StatusCompleted}))
	for i := 0; i < 7; i++ {
		require.NoError(t, env.practice.Create(&model.PracticeLog{
			SongID: 1, Date: time.Now().Add(time.Duration(-i) * time.Hour),
		}))
	}

	resp, raw := doJSON(t, http.MethodGet, env.server.URL+"/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, int64(2), stats.TotalSongs)
	assert.Equal(t, int64(7), stats.TotalPracticeLogs)
	assert.Equal(t, 1, stats.StatusCounts[model.StatusPractice])
	assert.Equal(t, 1, stats.StatusCounts[model.StatusCompleted])
	assert.Len(t, stats.RecentPracticeLogs, 5)
}
