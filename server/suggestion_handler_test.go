package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rlejr135/band-archive/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSuggestionValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name      string
		body      map[string]string
		wantError string
	}{
		{"missing title", map[string]string{"artist": "a", "link": "l"}, "Title is required"},
		{"missing artist", map[string]string{"title": "t", "link": "l"}, "Artist is required"},
		{"missing link", map[string]string{"title": "t", "artist": "a"}, "Link is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, http.MethodPost, env.server.URL+"/suggestions", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.wantError, errorMessage(t, raw))
		})
	}
}

func TestSuggestionsOrderedByScore(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.suggestions.Create(&model.Suggestion{Title: "low", Artist: "a", Link: "l", ThumbsUp: 1}))
	require.NoError(t, env.suggestions.Create(&model.Suggestion{Title: "high", Artist: "a", Link: "l", ThumbsUp: 5, ThumbsDown: 1}))
	require.NoError(t, env.suggestions.Create(&model.Suggestion{Title: "tied", Artist: "a", Link: "l", ThumbsUp: 1}))

	resp, raw := doJSON(t, http.MethodGet, env.server.URL+"/suggestions", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []model.Suggestion
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "high", got[0].Title)

	// Ties keep insertion order.
	assert.Equal(t, "low", got[1].Title)
	assert.Equal(t, "tied", got[2].Title)
}

func TestVoteSuggestion(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.suggestions.Create(&model.Suggestion{Title: "t", Artist: "a", Link: "l"}))

	resp, raw := doJSON(t, http.MethodPost, env.server.URL+"/suggestions/1/vote",
		map[string]string{"vote_type": "up"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.Suggestion
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, 1, got.ThumbsUp)
	assert.Equal(t, 0, got.ThumbsDown)

	resp, raw = doJSON(t, http.MethodPost, env.server.URL+"/suggestions/1/vote",
		map[string]string{"vote_type": "sideways"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "vote_type must be 'up' or 'down'", errorMessage(t, raw))
}

func TestDeleteSuggestionPasswordGate(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.suggestions.Create(&model.Suggestion{Title: "t", Artist: "a", Link: "l"}))

	// Wrong password: 403 and the row stays.
	resp, raw := doJSON(t, http.MethodDelete, env.server.URL+"/suggestions/1",
		map[string]string{"password": "guess"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid password", errorMessage(t, raw))

	still, err := env.suggestions.GetByID(1)
	require.NoError(t, err)
	assert.NotNil(t, still)

	// Correct password removes it.
	resp, _ = doJSON(t, http.MethodDelete, env.server.URL+"/suggestions/1",
		map[string]string{"password": "admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	gone, err := env.suggestions.GetByID(1)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
