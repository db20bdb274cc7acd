package server

import (
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/rlejr135/band-archive/config"
	"github.com/rlejr135/band-archive/core/auth"
	"github.com/rlejr135/band-archive/model"
	"github.com/rlejr135/band-archive/repository"
	"github.com/rlejr135/band-archive/storage"

	"github.com/stretchr/testify/require"
)

// In-memory repositories backing handler tests. Behavior mirrors the gorm
// implementations: GetByID returns nil on a miss, song delete cascades,
// member delete returns cascaded filenames.

type fakeSongRepo struct {
	songs  map[int64]*model.Song
	nextID int64
}

func newFakeSongRepo() *fakeSongRepo {
	return &fakeSongRepo{songs: map[int64]*model.Song{}, nextID: 1}
}

func (r *fakeSongRepo) List(filter repository.SongFilter) ([]model.Song, error) {
	var out []model.Song
	for _, song := range r.songs {
		if filter.Status != "" && song.Status != filter.Status {
			continue
		}
		if filter.Genre != "" && song.Genre != filter.Genre {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(song.Title), q) &&
				!strings.Contains(strings.ToLower(song.Artist), q) {
				continue
			}
		}
		out = append(out, *song)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if out == nil {
		out = []model.Song{}
	}
	return out, nil
}

func (r *fakeSongRepo) GetByID(id int64) (*model.Song, error) {
	song, ok := r.songs[id]
	if !ok {
		return nil, nil
	}
	copied := *song
	copied.Media = append([]model.MediaAsset(nil), song.Media...)
	return &copied, nil
}

func (r *fakeSongRepo) Create(song *model.Song) error {
	song.ID = r.nextID
	r.nextID++
	stored := *song
	r.songs[song.ID] = &stored
	return nil
}

func (r *fakeSongRepo) Save(song *model.Song) error {
	stored := *song
	r.songs[song.ID] = &stored
	return nil
}

func (r *fakeSongRepo) Delete(id int64) error {
	delete(r.songs, id)
	return nil
}

func (r *fakeSongRepo) Count() (int64, error) {
	return int64(len(r.songs)), nil
}

func (r *fakeSongRepo) CountByStatus() (map[string]int, error) {
	counts := map[string]int{}
	for _, song := range r.songs {
		counts[song.Status]++
	}
	return counts, nil
}

type fakeMediaRepo struct {
	assets map[int64]*model.MediaAsset
	songs  *fakeSongRepo
	nextID int64
}

func newFakeMediaRepo(songs *fakeSongRepo) *fakeMediaRepo {
	return &fakeMediaRepo{assets: map[int64]*model.MediaAsset{}, songs: songs, nextID: 1}
}

func (r *fakeMediaRepo) GetByID(id int64) (*model.MediaAsset, error) {
	asset, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	copied := *asset
	return &copied, nil
}

func (r *fakeMediaRepo) Create(asset *model.MediaAsset) error {
	asset.ID = r.nextID
	r.nextID++
	stored := *asset
	r.assets[asset.ID] = &stored
	r.syncSong(asset.SongID)
	return nil
}

func (r *fakeMediaRepo) Save(asset *model.MediaAsset) error {
	stored := *asset
	r.assets[asset.ID] = &stored
	r.syncSong(asset.SongID)
	return nil
}

func (r *fakeMediaRepo) Delete(id int64) error {
	asset, ok := r.assets[id]
	if !ok {
		return nil
	}
	delete(r.assets, id)
	r.syncSong(asset.SongID)
	return nil
}

// syncSong rebuilds the song's embedded media list, the way a preload would.
func (r *fakeMediaRepo) syncSong(songID int64) {
	song, ok := r.songs.songs[songID]
	if !ok {
		return
	}
	var media []model.MediaAsset
	for _, asset := range r.assets {
		if asset.SongID == songID {
			media = append(media, *asset)
		}
	}
	sort.Slice(media, func(i, j int) bool { return media[i].ID < media[j].ID })
	if media == nil {
		media = []model.MediaAsset{}
	}
	song.Media = media
}

type fakePracticeLogRepo struct {
	logs   map[int64]*model.PracticeLog
	nextID int64
}

func newFakePracticeLogRepo() *fakePracticeLogRepo {
	return &fakePracticeLogRepo{logs: map[int64]*model.PracticeLog{}, nextID: 1}
}

func (r *fakePracticeLogRepo) ListBySong(songID int64) ([]model.PracticeLog, error) {
	out := []model.PracticeLog{}
	for _, log := range r.logs {
		if log.SongID == songID {
			out = append(out, *log)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakePracticeLogRepo) GetByID(id int64) (*model.PracticeLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, nil
	}
	copied := *log
	return &copied, nil
}

func (r *fakePracticeLogRepo) Create(log *model.PracticeLog) error {
	log.ID = r.nextID
	r.nextID++
	stored := *log
	r.logs[log.ID] = &stored
	return nil
}

func (r *fakePracticeLogRepo) Save(log *model.PracticeLog) error {
	stored := *log
	r.logs[log.ID] = &stored
	return nil
}

func (r *fakePracticeLogRepo) Delete(id int64) error {
	delete(r.logs, id)
	return nil
}

func (r *fakePracticeLogRepo) Count() (int64, error) {
	return int64(len(r.logs)), nil
}

func (r *fakePracticeLogRepo) Recent(limit int) ([]model.PracticeLog, error) {
	all := []model.PracticeLog{}
	for _, log := range r.logs {
		all = append(all, *log)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeMemberRepo struct {
	members  map[int64]*model.Member
	personal *fakePersonalLogRepo
	nextID   int64
}

func newFakeMemberRepo(personal *fakePersonalLogRepo) *fakeMemberRepo {
	return &fakeMemberRepo{members: map[int64]*model.Member{}, personal: personal, nextID: 1}
}

func (r *fakeMemberRepo) List() ([]model.Member, error) {
	out := []model.Member{}
	for _, member := range r.members {
		out = append(out, *member)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMemberRepo) GetByID(id int64) (*model.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, nil
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) Create(member *model.Member) error {
	member.ID = r.nextID
	r.nextID++
	stored := *member
	r.members[member.ID] = &stored
	return nil
}

func (r *fakeMemberRepo) Save(member *model.Member) error {
	stored := *member
	r.members[member.ID] = &stored
	return nil
}

func (r *fakeMemberRepo) Delete(id int64) ([]string, error) {
	delete(r.members, id)
	var filenames []string
	for logID, log := range r.personal.logs {
		if log.MemberID == id {
			filenames = append(filenames, log.Filename)
			delete(r.personal.logs, logID)
		}
	}
	return filenames, nil
}

type fakePersonalLogRepo struct {
	logs   map[int64]*model.PersonalLog
	nextID int64
}

func newFakePersonalLogRepo() *fakePersonalLogRepo {
	return &fakePersonalLogRepo{logs: map[int64]*model.PersonalLog{}, nextID: 1}
}

func (r *fakePersonalLogRepo) ListByMember(memberID int64) ([]model.PersonalLog, error) {
	out := []model.PersonalLog{}
	for _, log := range r.logs {
		if log.MemberID == memberID {
			out = append(out, *log)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakePersonalLogRepo) GetByID(id int64) (*model.PersonalLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, nil
	}
	copied := *log
	return &copied, nil
}

func (r *fakePersonalLogRepo) Create(log *model.PersonalLog) error {
	log.ID = r.nextID
	r.nextID++
	stored := *log
	r.logs[log.ID] = &stored
	return nil
}

func (r *fakePersonalLogRepo) Delete(id int64) error {
	delete(r.logs, id)
	return nil
}

type fakeSuggestionRepo struct {
	suggestions map[int64]*model.Suggestion
	order       []int64
	nextID      int64
}

func newFakeSuggestionRepo() *fakeSuggestionRepo {
	return &fakeSuggestionRepo{suggestions: map[int64]*model.Suggestion{}, nextID: 1}
}

func (r *fakeSuggestionRepo) List() ([]model.Suggestion, error) {
	out := []model.Suggestion{}
	for _, id := range r.order {
		if s, ok := r.suggestions[id]; ok {
			out = append(out, *s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score() > out[j].Score() })
	return out, nil
}

func (r *fakeSuggestionRepo) GetByID(id int64) (*model.Suggestion, error) {
	s, ok := r.suggestions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSuggestionRepo) Create(suggestion *model.Suggestion) error {
	suggestion.ID = r.nextID
	r.nextID++
	stored := *suggestion
	r.suggestions[suggestion.ID] = &stored
	r.order = append(r.order, suggestion.ID)
	return nil
}

func (r *fakeSuggestionRepo) Delete(id int64) error {
	delete(r.suggestions, id)
	return nil
}

func (r *fakeSuggestionRepo) Vote(id int64, voteType string) (*model.Suggestion, error) {
	s, ok := r.suggestions[id]
	if !ok {
		return nil, nil
	}
	if voteType == "up" {
		s.ThumbsUp++
	} else {
		s.ThumbsDown++
	}
	copied := *s
	return &copied, nil
}

// testEnv bundles the handler, its router and the fakes behind it.
type testEnv struct {
	server      *httptest.Server
	songs       *fakeSongRepo
	media       *fakeMediaRepo
	practice    *fakePracticeLogRepo
	members     *fakeMemberRepo
	personal    *fakePersonalLogRepo
	suggestions *fakeSuggestionRepo
	store       storage.Provider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.NewLocalProvider(t.TempDir())
	require.NoError(t, err)
	gate, err := auth.NewGate("admin")
	require.NoError(t, err)

	songs := newFakeSongRepo()
	media := newFakeMediaRepo(songs)
	practice := newFakePracticeLogRepo()
	personal := newFakePersonalLogRepo()
	members := newFakeMemberRepo(personal)
	suggestions := newFakeSuggestionRepo()

	h := NewAPIHandler(songs, media, practice, members, personal, suggestions, store, gate, &config.Config{})
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)

	return &testEnv{
		server:      srv,
		songs:       songs,
		media:       media,
		practice:    practice,
		members:     members,
		personal:    personal,
		suggestions: suggestions,
		store:       store,
	}
}
