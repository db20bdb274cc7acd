// Package client implements the in-memory state layer of the band archive:
// a transport client against the archive service plus the catalog, practice
// log, suggestion and member stores that keep local state reconciled with
// the service's responses.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rlejr135/band-archive/model"

	"github.com/go-resty/resty/v2"
)

// MaxUploadSize is the per-file limit enforced before any bytes are sent.
const MaxUploadSize = 200 << 20 // 200MB

// ProgressFunc receives upload progress as a percentage in [0,100]. Calls
// are monotonically non-decreasing and made on the goroutine running the
// upload; completion is signaled by the upload call returning, not by the
// callback reaching 100.
type ProgressFunc func(percent float64)

// Client is the transport layer against the archive service. It performs no
// retries and keeps no state; stores own all caching and reconciliation.
type Client struct {
	http *resty.Client
}

// New creates a client for the archive service at baseURL.
func New(baseURL string) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}
}

// do executes a JSON request and decodes the response into out (when non-nil).
// Transport failures become *NetworkError, non-2xx responses *HTTPError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &NetworkError{Err: err}
	}
	if resp.IsError() {
		return &HTTPError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
		}
	}
	return nil
}

// UploadWithProgress posts a multipart file upload, reporting progress while
// the body is consumed. The 200MB cap is enforced before any request is made.
func (c *Client) UploadWithProgress(ctx context.Context, path, filename string, r io.Reader, size int64, fields map[string]string, onProgress ProgressFunc) ([]byte, error) {
	if size > MaxUploadSize {
		return nil, &ValidationError{Message: fmt.Sprintf("'%s' exceeds the 200MB upload limit", filename)}
	}

	req := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, newProgressReader(r, size, onProgress))
	if len(fields) > 0 {
		req.SetFormData(fields)
	}

	resp, err := req.Post(path)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.IsError() {
		return nil, &HTTPError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return resp.Body(), nil
}

// --- Songs ---

// ListSongs fetches the full song collection. Filters may be empty.
func (c *Client) ListSongs(ctx context.Context, query, status, genre string) ([]model.Song, error) {
	path := "/songs"
	req := c.http.R().SetContext(ctx)
	if query != "" {
		req.SetQueryParam("q", query)
	}
	if status != "" {
		req.SetQueryParam("status", status)
	}
	if genre != "" {
		req.SetQueryParam("genre", genre)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.IsError() {
		return nil, &HTTPError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var songs []model.Song
	if err := json.Unmarshal(resp.Body(), &songs); err != nil {
		return nil, fmt.Errorf("failed to decode song list: %w", err)
	}
	return songs, nil
}

// GetSong fetches a single song with its media.
func (c *Client) GetSong(ctx context.Context, id int64) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodGet, "/songs/"+strconv.FormatInt(id, 10), nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// CreateSong posts a draft and returns the server-assigned record.
func (c *Client) CreateSong(ctx context.Context, draft model.SongDraft) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodPost, "/songs", draft, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// UpdateSong puts a patch and returns the normalized record.
func (c *Client) UpdateSong(ctx context.Context, id int64, patch model.SongDraft) (*model.Song, error) {
	var song model.Song
	if err := c.do(ctx, http.MethodPut, "/songs/"+strconv.FormatInt(id, 10), patch, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// DeleteSong removes a song.
func (c *Client) DeleteSong(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/songs/"+strconv.FormatInt(id, 10), nil, nil)
}

// UploadMedia attaches a file to a song.
func (c *Client) UploadMedia(ctx context.Context, songID int64, filename string, r io.Reader, size int64, onProgress ProgressFunc) (*model.MediaAsset, error) {
	body, err := c.UploadWithProgress(ctx, "/songs/"+strconv.FormatInt(songID, 10)+"/media", filename, r, size, nil, onProgress)
	if err != nil {
		return nil, err
	}

	var asset model.MediaAsset
	if err := json.Unmarshal(body, &asset); err != nil {
		return nil, fmt.Errorf("failed to decode media asset: %w", err)
	}
	return &asset, nil
}

// DeleteMedia removes a media asset.
func (c *Client) DeleteMedia(ctx context.Context, mediaID int64) error {
	return c.do(ctx, http.MethodDelete, "/media/"+strconv.FormatInt(mediaID, 10), nil, nil)
}

// RenameMedia renames a media asset and returns the updated record.
func (c *Client) RenameMedia(ctx context.Context, mediaID int64, filename string) (*model.MediaAsset, error) {
	var asset model.MediaAsset
	body := map[string]string{"filename": filename}
	if err := c.do(ctx, http.MethodPut, "/media/"+strconv.FormatInt(mediaID, 10)+"/rename", body, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// --- Practice logs ---

// ListPracticeLogs fetches a song's practice logs, newest first.
func (c *Client) ListPracticeLogs(ctx context.Context, songID int64) ([]model.PracticeLog, error) {
	var logs []model.PracticeLog
	path := "/songs/" + strconv.FormatInt(songID, 10) + "/practice-logs"
	if err := c.do(ctx, http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GetPracticeLog fetches a single practice log.
func (c *Client) GetPracticeLog(ctx context.Context, id int64) (*model.PracticeLog, error) {
	var log model.PracticeLog
	if err := c.do(ctx, http.MethodGet, "/practice-logs/"+strconv.FormatInt(id, 10), nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// CreatePracticeLog creates a practice log for a song.
func (c *Client) CreatePracticeLog(ctx context.Context, songID int64, draft model.PracticeLogDraft) (*model.PracticeLog, error) {
	var log model.PracticeLog
	path := "/songs/" + strconv.FormatInt(songID, 10) + "/practice-logs"
	if err := c.do(ctx, http.MethodPost, path, draft, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// UpdatePracticeLog patches a practice log.
func (c *Client) UpdatePracticeLog(ctx context.Context, id int64, patch model.PracticeLogDraft) (*model.PracticeLog, error) {
	var log model.PracticeLog
	if err := c.do(ctx, http.MethodPut, "/practice-logs/"+strconv.FormatInt(id, 10), patch, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// DeletePracticeLog removes a practice log.
func (c *Client) DeletePracticeLog(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/practice-logs/"+strconv.FormatInt(id, 10), nil, nil)
}

// UploadRecording attaches a recording to a practice log and returns the
// updated log.
func (c *Client) UploadRecording(ctx context.Context, logID int64, filename string, r io.Reader, size int64, onProgress ProgressFunc) (*model.PracticeLog, error) {
	body, err := c.UploadWithProgress(ctx, "/practice-logs/"+strconv.FormatInt(logID, 10)+"/upload", filename, r, size, nil, onProgress)
	if err != nil {
		return nil, err
	}

	var log model.PracticeLog
	if err := json.Unmarshal(body, &log); err != nil {
		return nil, fmt.Errorf("failed to decode practice log: %w", err)
	}
	return &log, nil
}

// --- Members ---

// ListMembers fetches all members.
func (c *Client) ListMembers(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	if err := c.do(ctx, http.MethodGet, "/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetMember fetches a single member.
func (c *Client) GetMember(ctx context.Context, id int64) (*model.Member, error) {
	var member model.Member
	if err := c.do(ctx, http.MethodGet, "/members/"+strconv.FormatInt(id, 10), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// CreateMember creates a member.
func (c *Client) CreateMember(ctx context.Context, name, instrument string) (*model.Member, error) {
	var member model.Member
	body := map[string]string{"name": name, "instrument": instrument}
	if err := c.do(ctx, http.MethodPost, "/members", body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember patches a member.
func (c *Client) UpdateMember(ctx context.Context, id int64, name, instrument string) (*model.Member, error) {
	var member model.Member
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	if instrument != "" {
		body["instrument"] = instrument
	}
	if err := c.do(ctx, http.MethodPut, "/members/"+strconv.FormatInt(id, 10), body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteMember removes a member; the service cascades to personal logs.
func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/members/"+strconv.FormatInt(id, 10), nil, nil)
}

// ListPersonalLogs fetches a member's personal logs.
func (c *Client) ListPersonalLogs(ctx context.Context, memberID int64) ([]model.PersonalLog, error) {
	var logs []model.PersonalLog
	path := "/members/" + strconv.FormatInt(memberID, 10) + "/logs"
	if err := c.do(ctx, http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CreatePersonalLog uploads a member's practice recording with a title.
func (c *Client) CreatePersonalLog(ctx context.Context, memberID int64, title, filename string, r io.Reader, size int64, onProgress ProgressFunc) (*model.PersonalLog, error) {
	fields := map[string]string{"title": title}
	body, err := c.UploadWithProgress(ctx, "/members/"+strconv.FormatInt(memberID, 10)+"/logs", filename, r, size, fields, onProgress)
	if err != nil {
		return nil, err
	}

	var log model.PersonalLog
	if err := json.Unmarshal(body, &log); err != nil {
		return nil, fmt.Errorf("failed to decode personal log: %w", err)
	}
	return &log, nil
}

// DeletePersonalLog removes a personal log.
func (c *Client) DeletePersonalLog(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/logs/"+strconv.FormatInt(id, 10), nil, nil)
}

// --- Suggestions ---

// ListSuggestions fetches suggestions ranked by score.
func (c *Client) ListSuggestions(ctx context.Context) ([]model.Suggestion, error) {
	var suggestions []model.Suggestion
	if err := c.do(ctx, http.MethodGet, "/suggestions", nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// CreateSuggestion creates a suggestion.
func (c *Client) CreateSuggestion(ctx context.Context, title, artist, link, memo string) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	body := map[string]string{"title": title, "artist": artist, "link": link, "memo": memo}
	if err := c.do(ctx, http.MethodPost, "/suggestions", body, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// VoteSuggestion records an up or down vote and returns the updated record.
func (c *Client) VoteSuggestion(ctx context.Context, id int64, voteType string) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	body := map[string]string{"vote_type": voteType}
	path := "/suggestions/" + strconv.FormatInt(id, 10) + "/vote"
	if err := c.do(ctx, http.MethodPost, path, body, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// DeleteSuggestion removes a suggestion after server-side password
// verification. A 403 is surfaced as *AuthError so callers can distinguish
// a wrong password from other failures.
func (c *Client) DeleteSuggestion(ctx context.Context, id int64, password string) error {
	body := map[string]string{"password": password}
	err := c.do(ctx, http.MethodDelete, "/suggestions/"+strconv.FormatInt(id, 10), body, nil)
	if httpErr, ok := err.(*HTTPError); ok && httpErr.Status == http.StatusForbidden {
		return &AuthError{Message: "wrong password"}
	}
	return err
}

// --- Dashboard ---

// DashboardStats fetches catalog-wide statistics.
func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
