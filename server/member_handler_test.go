package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rlejr135/band-archive/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemberValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := doJSON(t, http.MethodPost, env.server.URL+"/members",
		map[string]string{"instrument": "drums"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name is required", errorMessage(t, raw))

	resp, raw = doJSON(t, http.MethodPost, env.server.URL+"/members",
		map[string]string{"name": "Mina"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "instrument is required", errorMessage(t, raw))

	resp, raw = doJSON(t, http.MethodPost, env.server.URL+"/members",
		map[string]string{"name": "Mina", "instrument": "drums"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var member model.Member
	require.NoError(t, json.Unmarshal(raw, &member))
	assert.NotZero(t, member.ID)
}

func TestDeleteMemberCascadesPersonalLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	require.NoError(t, env.members.Create(&model.Member{Name: "Mina", Instrument: "drums"}))
	require.NoError(t, env.personal.Create(&model.PersonalLog{
		MemberID: 1, Title: "warmups", Filename: "1_20250801_warmups.mp3",
	}))
	require.NoError(t, env.store.Save(ctx, "personal_logs/1_20250801_warmups.mp3",
		strings.NewReader("audio"), 5, "audio/mpeg"))

	resp, _ := doJSON(t, http.MethodDelete, env.server.URL+"/members/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	member, err := env.members.GetByID(1)
	require.NoError(t, err)
	assert.Nil(t, member)

	log, err := env.personal.GetByID(1)
	require.NoError(t, err)
	assert.Nil(t, log)

	exists, err := env.store.Exists(ctx, "personal_logs/1_20250801_warmups.mp3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreatePersonalLog(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.members.Create(&model.Member{Name: "Mina", Instrument: "drums"}))

	resp, raw := uploadFile(t, env.server.URL+"/members/1/logs", "file", "scales.mp3", "audio",
		map[string]string{"title": "scales"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var log model.PersonalLog
	require.NoError(t, json.Unmarshal(raw, &log))
	assert.Equal(t, int64(1), log.MemberID)
	assert.Equal(t, "scales", log.Title)
	assert.Equal(t, "scales.mp3", log.OriginalFilename)
	assert.Equal(t, "audio", log.FileType)
	assert.Regexp(t, `^1_\d{8}_scales\.mp3$`, log.Filename)

	exists, err := env.store.Exists(t.Context(), "personal_logs/"+log.Filename)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreatePersonalLogValidation(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.members.Create(&model.Member{Name: "Mina", Instrument: "drums"}))

	// Missing title.
	resp, raw := uploadFile(t, env.server.URL+"/members/1/logs", "file", "scales.mp3", "audio", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title is required", errorMessage(t, raw))

	// Document extensions are not recordings.
	resp, raw = uploadFile(t, env.server.URL+"/members/1/logs", "file", "notes.pdf", "pdf",
		map[string]string{"title": "notes"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "File type not allowed. Audio and video files only", errorMessage(t, raw))
}

func TestDeletePersonalLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	require.NoError(t, env.members.Create(&model.Member{Name: "Mina", Instrument: "drums"}))
	require.NoError(t, env.personal.Create(&model.PersonalLog{
		MemberID: 1, Title: "warmups", Filename: "1_20250801_warmups.mp3",
	}))
	require.NoError(t, env.store.Save(ctx, "personal_logs/1_20250801_warmups.mp3",
		strings.NewReader("audio"), 5, "audio/mpeg"))

	resp, _ := doJSON(t, http.MethodDelete, env.server.URL+"/logs/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	log, err := env.personal.GetByID(1)
	require.NoError(t, err)
	assert.Nil(t, log)

	exists, err := env.store.Exists(ctx, "personal_logs/1_20250801_warmups.mp3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetMember(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.members.Create(&model.Member{Name: "Mina", Instrument: "drums"}))

	resp, raw := doJSON(t, http.MethodGet, env.server.URL+"/members/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var member model.Member
	require.NoError(t, json.Unmarshal(raw, &member))
	assert.Equal(t, int64(1), member.ID)
	assert.Equal(t, "Mina", member.Name)

	resp, raw = doJSON(t, http.MethodGet, env.server.URL+"/members/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Member not found", errorMessage(t, raw))
}
