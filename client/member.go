package client

import (
	"context"
	"io"
	"sync"

	"github.com/rlejr135/band-archive/model"
)

// MemberStore holds the member roster and each member's personal logs.
type MemberStore struct {
	client *Client

	mu      sync.RWMutex
	members []model.Member
	logs    map[int64][]model.PersonalLog // keyed by member id
}

// NewMemberStore creates an empty member store.
func NewMemberStore(client *Client) *MemberStore {
	return &MemberStore{
		client: client,
		logs:   make(map[int64][]model.PersonalLog),
	}
}

// Members returns a snapshot of the roster.
func (s *MemberStore) Members() []model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]model.Member, len(s.members))
	copy(members, s.members)
	return members
}

// PersonalLogs returns a snapshot of a member's logs.
func (s *MemberStore) PersonalLogs(memberID int64) []model.PersonalLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := make([]model.PersonalLog, len(s.logs[memberID]))
	copy(logs, s.logs[memberID])
	return logs
}

// List fetches and replaces the roster.
func (s *MemberStore) List(ctx context.Context) ([]model.Member, error) {
	members, err := s.client.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
	return s.Members(), nil
}

// Create adds a member.
func (s *MemberStore) Create(ctx context.Context, name, instrument string) (*model.Member, error) {
	member, err := s.client.CreateMember(ctx, name, instrument)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.members = append(s.members, *member)
	s.mu.Unlock()

	result := *member
	return &result, nil
}

// Update patches a member and replaces the local entry from the response.
func (s *MemberStore) Update(ctx context.Context, id int64, name, instrument string) (*model.Member, error) {
	member, err := s.client.UpdateMember(ctx, id, name, instrument)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.members {
		if s.members[i].ID == member.ID {
			s.members[i] = *member
			break
		}
	}
	s.mu.Unlock()

	result := *member
	return &result, nil
}

// Delete removes a member. The service cascades to their personal logs, so
// the local log cache is dropped too. Destructive: callers must have
// confirmed with the user before invoking.
func (s *MemberStore) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteMember(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.members[:0]
	for _, member := range s.members {
		if member.ID != id {
			kept = append(kept, member)
		}
	}
	s.members = kept
	delete(s.logs, id)
	s.mu.Unlock()
	return nil
}

// Logs fetches and replaces a member's personal logs.
func (s *MemberStore) Logs(ctx context.Context, memberID int64) ([]model.PersonalLog, error) {
	logs, err := s.client.ListPersonalLogs(ctx, memberID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.logs[memberID] = logs
	s.mu.Unlock()
	return s.PersonalLogs(memberID), nil
}

// AddLog uploads a recording for a member and prepends the returned record.
func (s *MemberStore) AddLog(ctx context.Context, memberID int64, title, filename string, r io.Reader, size int64, onProgress ProgressFunc) (*model.PersonalLog, error) {
	log, err := s.client.CreatePersonalLog(ctx, memberID, title, filename, r, size, onProgress)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.logs[memberID] = append([]model.PersonalLog{*log}, s.logs[memberID]...)
	s.mu.Unlock()

	result := *log
	return &result, nil
}

// DeleteLog removes a personal log.
func (s *MemberStore) DeleteLog(ctx context.Context, logID int64) error {
	if err := s.client.DeletePersonalLog(ctx, logID); err != nil {
		return err
	}

	s.mu.Lock()
	for memberID, logs := range s.logs {
		kept := logs[:0]
		for _, log := range logs {
			if log.ID != logID {
				kept = append(kept, log)
			}
		}
		s.logs[memberID] = kept
	}
	s.mu.Unlock()
	return nil
}
