package client

import (
	"context"
	"io"
	"sync"

	"github.com/rlejr135/band-archive/model"
)

// PracticeLogStore holds practice logs per song. Unlike the catalog, log
// mutations apply the single returned record directly instead of re-fetching
// the list: logs round-trip verbatim, with no server-computed fields to
// diverge on.
type PracticeLogStore struct {
	client *Client

	mu   sync.RWMutex
	logs map[int64][]model.PracticeLog // keyed by song id
}

// NewPracticeLogStore creates an empty practice log store.
func NewPracticeLogStore(client *Client) *PracticeLogStore {
	return &PracticeLogStore{
		client: client,
		logs:   make(map[int64][]model.PracticeLog),
	}
}

// Logs returns a snapshot of a song's practice logs.
func (s *PracticeLogStore) Logs(songID int64) []model.PracticeLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := make([]model.PracticeLog, len(s.logs[songID]))
	copy(logs, s.logs[songID])
	return logs
}

// List fetches and replaces a song's practice logs.
func (s *PracticeLogStore) List(ctx context.Context, songID int64) ([]model.PracticeLog, error) {
	logs, err := s.client.ListPracticeLogs(ctx, songID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.logs[songID] = logs
	s.mu.Unlock()
	return s.Logs(songID), nil
}

// Create posts a draft and prepends the returned record (newest first).
func (s *PracticeLogStore) Create(ctx context.Context, songID int64, draft model.PracticeLogDraft) (*model.PracticeLog, error) {
	log, err := s.client.CreatePracticeLog(ctx, songID, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.logs[songID] = append([]model.PracticeLog{*log}, s.logs[songID]...)
	s.mu.Unlock()

	result := *log
	return &result, nil
}

// Update patches a log and replaces it in place from the returned record.
func (s *PracticeLogStore) Update(ctx context.Context, id int64, patch model.PracticeLogDraft) (*model.PracticeLog, error) {
	log, err := s.client.UpdatePracticeLog(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.apply(log)

	result := *log
	return &result, nil
}

// Delete removes a log. Destructive: callers must have confirmed with the
// user before invoking.
func (s *PracticeLogStore) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeletePracticeLog(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for songID, logs := range s.logs {
		kept := logs[:0]
		for _, log := range logs {
			if log.ID != id {
				kept = append(kept, log)
			}
		}
		s.logs[songID] = kept
	}
	s.mu.Unlock()
	return nil
}

// AttachRecording uploads a recording for a log and merges the returned
// record.
func (s *PracticeLogStore) AttachRecording(ctx context.Context, id int64, filename string, r io.Reader, size int64, onProgress ProgressFunc) (*model.PracticeLog, error) {
	log, err := s.client.UploadRecording(ctx, id, filename, r, size, onProgress)
	if err != nil {
		return nil, err
	}

	s.apply(log)

	result := *log
	return &result, nil
}

func (s *PracticeLogStore) apply(log *model.PracticeLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logs := s.logs[log.SongID]
	for i := range logs {
		if logs[i].ID == log.ID {
			logs[i] = *log
			return
		}
	}
}
