package client

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rlejr135/band-archive/model"
)

// SuggestionBoard holds the ranked suggestion list. Ranking key is
// thumbs_up - thumbs_down descending; ties keep their existing relative
// order (stable sort).
type SuggestionBoard struct {
	client *Client

	mu          sync.RWMutex
	suggestions []model.Suggestion
}

// NewSuggestionBoard creates an empty board.
func NewSuggestionBoard(client *Client) *SuggestionBoard {
	return &SuggestionBoard{client: client}
}

// Suggestions returns a snapshot of the ranked list.
func (s *SuggestionBoard) Suggestions() []model.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	suggestions := make([]model.Suggestion, len(s.suggestions))
	copy(suggestions, s.suggestions)
	return suggestions
}

// Load fetches and replaces the board. The service already orders by score;
// the stable re-sort is a no-op safety net.
func (s *SuggestionBoard) Load(ctx context.Context) ([]model.Suggestion, error) {
	suggestions, err := s.client.ListSuggestions(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.suggestions = suggestions
	s.resortLocked()
	s.mu.Unlock()
	return s.Suggestions(), nil
}

// Create posts a suggestion and inserts it at its rank.
func (s *SuggestionBoard) Create(ctx context.Context, title, artist, link, memo string) (*model.Suggestion, error) {
	suggestion, err := s.client.CreateSuggestion(ctx, title, artist, link, memo)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.suggestions = append(s.suggestions, *suggestion)
	s.resortLocked()
	s.mu.Unlock()

	result := *suggestion
	return &result, nil
}

// Vote records a vote, replaces the entry with the returned record and
// re-sorts the board. Counters always come from the service, never from
// local arithmetic.
func (s *SuggestionBoard) Vote(ctx context.Context, id int64, direction string) (*model.Suggestion, error) {
	if direction != "up" && direction != "down" {
		return nil, &ValidationError{Message: "vote direction must be 'up' or 'down'"}
	}

	suggestion, err := s.client.VoteSuggestion(ctx, id, direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.suggestions {
		if s.suggestions[i].ID == suggestion.ID {
			s.suggestions[i] = *suggestion
			break
		}
	}
	s.resortLocked()
	s.mu.Unlock()

	result := *suggestion
	return &result, nil
}

// Delete removes a suggestion after the service verifies the password. The
// local entry is only removed on success; a wrong password (*AuthError)
// leaves the board untouched.
func (s *SuggestionBoard) Delete(ctx context.Context, id int64, password string) error {
	if err := s.client.DeleteSuggestion(ctx, id, password); err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return authErr
		}
		return err
	}

	s.mu.Lock()
	kept := s.suggestions[:0]
	for _, suggestion := range s.suggestions {
		if suggestion.ID != id {
			kept = append(kept, suggestion)
		}
	}
	s.suggestions = kept
	s.mu.Unlock()
	return nil
}

// resortLocked stably re-sorts by score descending. Callers hold the lock.
func (s *SuggestionBoard) resortLocked() {
	sort.SliceStable(s.suggestions, func(i, j int) bool {
		return s.suggestions[i].Score() > s.suggestions[j].Score()
	})
}
