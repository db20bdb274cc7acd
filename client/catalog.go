package client

import (
	"context"
	"io"
	"sync"

	"github.com/rlejr135/band-archive/logger"
	"github.com/rlejr135/band-archive/model"
)

// CatalogStore owns the in-memory song collection and the current selection.
// All mutations go through the archive service first; local state is then
// reconciled from the authoritative response. Nothing else may write the
// collection.
//
// Concurrent calls to the same operation are not serialized: the last
// response to land wins. That is acceptable for a single-operator tool but
// is a known race if the archive is ever edited from two places at once.
type CatalogStore struct {
	client *Client

	mu          sync.RWMutex
	songs       []model.Song
	currentSong *model.Song
	isEditing   bool
	loading     bool
	err         error

	subscribers []func()
}

// NewCatalogStore creates an empty catalog backed by the given client.
func NewCatalogStore(client *Client) *CatalogStore {
	return &CatalogStore{client: client}
}

// Subscribe registers a callback invoked after every state change.
func (s *CatalogStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *CatalogStore) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

// Songs returns a snapshot of the song collection.
func (s *CatalogStore) Songs() []model.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	songs := make([]model.Song, len(s.songs))
	copy(songs, s.songs)
	return songs
}

// CurrentSong returns a copy of the selected song, or nil.
func (s *CatalogStore) CurrentSong() *model.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentSong == nil {
		return nil
	}
	song := *s.currentSong
	return &song
}

// IsEditing reports whether the catalog is in edit mode.
func (s *CatalogStore) IsEditing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isEditing
}

// Loading reports whether a full list load is in flight.
func (s *CatalogStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the recorded load error, or nil.
func (s *CatalogStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// LoadAll replaces the collection with the full list from the archive.
// Failures are recorded in the store's error state rather than returned:
// the load runs without a direct user action to attach an error to, and the
// UI offers a manual retry. Re-entrant calls are not coalesced; the last
// response to complete wins.
func (s *CatalogStore) LoadAll(ctx context.Context) {
	s.Search(ctx, "", "", "")
}

// Search is LoadAll with server-side filters.
func (s *CatalogStore) Search(ctx context.Context, query, status, genre string) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	songs, err := s.client.ListSongs(ctx, query, status, genre)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.err = err
		logger.Warn("Failed to load song list", logger.ErrorField(err))
	} else {
		s.songs = songs
		s.err = nil
	}
	s.mu.Unlock()
	s.notify()
}

// Create posts a draft and appends the server-assigned record. Selecting the
// new song is the caller's choice.
func (s *CatalogStore) Create(ctx context.Context, draft model.SongDraft) (*model.Song, error) {
	song, err := s.client.CreateSong(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.songs = append(s.songs, *song)
	s.mu.Unlock()
	s.notify()

	result := *song
	return &result, nil
}

// Update puts a patch and replaces the entry with the round-tripped server
// value. The struct is never patched locally: the service may normalize
// fields, and the response is the only truth.
func (s *CatalogStore) Update(ctx context.Context, id int64, patch model.SongDraft) (*model.Song, error) {
	song, err := s.client.UpdateSong(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.applySong(song)

	result := *song
	return &result, nil
}

// Delete removes the song. If it was selected, the selection is cleared.
func (s *CatalogStore) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteSong(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.songs[:0]
	for _, song := range s.songs {
		if song.ID != id {
			kept = append(kept, song)
		}
	}
	s.songs = kept
	if s.currentSong != nil && s.currentSong.ID == id {
		s.currentSong = nil
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

// SelectSong sets the current selection and leaves edit mode.
func (s *CatalogStore) SelectSong(song *model.Song) {
	s.mu.Lock()
	if song == nil {
		s.currentSong = nil
	} else {
		selected := *song
		s.currentSong = &selected
	}
	s.isEditing = false
	s.mu.Unlock()
	s.notify()
}

// StartCreate enters edit mode with no selection.
func (s *CatalogStore) StartCreate() {
	s.mu.Lock()
	s.currentSong = nil
	s.isEditing = true
	s.mu.Unlock()
	s.notify()
}

// StartEdit enters edit mode for an existing song.
func (s *CatalogStore) StartEdit(song *model.Song) {
	s.mu.Lock()
	selected := *song
	s.currentSong = &selected
	s.isEditing = true
	s.mu.Unlock()
	s.notify()
}

// CancelEdit leaves edit mode without touching the selection: cancelling an
// edit returns to the song's detail view, cancelling a creation returns to
// the list because no song was selected.
func (s *CatalogStore) CancelEdit() {
	s.mu.Lock()
	s.isEditing = false
	s.mu.Unlock()
	s.notify()
}

// AddMedia uploads a file to a song, then re-fetches the whole song rather
// than appending locally: the service computes the stored filename, size and
// canonical type, and the local list must never diverge from that.
func (s *CatalogStore) AddMedia(ctx context.Context, songID int64, filename string, r io.Reader, size int64, onProgress ProgressFunc) error {
	if _, err := s.client.UploadMedia(ctx, songID, filename, r, size, onProgress); err != nil {
		return err
	}
	return s.refreshSong(ctx, songID)
}

// RemoveMedia deletes a media asset and re-fetches the owning song.
func (s *CatalogStore) RemoveMedia(ctx context.Context, songID, mediaID int64) error {
	if err := s.client.DeleteMedia(ctx, mediaID); err != nil {
		return err
	}
	return s.refreshSong(ctx, songID)
}

// RenameMedia renames a media asset and re-fetches the owning song.
func (s *CatalogStore) RenameMedia(ctx context.Context, songID, mediaID int64, newName string) error {
	if _, err := s.client.RenameMedia(ctx, mediaID, newName); err != nil {
		return err
	}
	return s.refreshSong(ctx, songID)
}

// refreshSong reconciles one song from the archive's current state.
func (s *CatalogStore) refreshSong(ctx context.Context, songID int64) error {
	song, err := s.client.GetSong(ctx, songID)
	if err != nil {
		return err
	}
	s.applySong(song)
	return nil
}

// applySong replaces the collection entry and, when selected, the current
// song with a fresh server value. A song no longer present locally is a
// stale response (deleted meanwhile, or the caller navigated away before a
// load finished) and is dropped.
func (s *CatalogStore) applySong(song *model.Song) {
	s.mu.Lock()
	found := false
	for i := range s.songs {
		if s.songs[i].ID == song.ID {
			s.songs[i] = *song
			found = true
			break
		}
	}
	if found && s.currentSong != nil && s.currentSong.ID == song.ID {
		selected := *song
		s.currentSong = &selected
	}
	s.mu.Unlock()
	if found {
		s.notify()
	}
}
