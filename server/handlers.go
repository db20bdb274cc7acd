package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rlejr135/band-archive/config"
	"github.com/rlejr135/band-archive/core/auth"
	"github.com/rlejr135/band-archive/repository"
	"github.com/rlejr135/band-archive/storage"

	"github.com/gorilla/mux"
)

// MaxUploadSize is the per-file upload cap enforced by the service. The
// client enforces the same limit before transmitting.
const MaxUploadSize = 200 << 20 // 200MB

// APIHandler handles all archive API requests.
type APIHandler struct {
	songRepo        repository.SongRepository
	mediaRepo       repository.MediaRepository
	practiceRepo    repository.PracticeLogRepository
	memberRepo      repository.MemberRepository
	personalRepo    repository.PersonalLogRepository
	suggestionRepo  repository.SuggestionRepository
	store           storage.Provider
	gate            *auth.Gate
	cfg             *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	songRepo repository.SongRepository,
	mediaRepo repository.MediaRepository,
	practiceRepo repository.PracticeLogRepository,
	memberRepo repository.MemberRepository,
	personalRepo repository.PersonalLogRepository,
	suggestionRepo repository.SuggestionRepository,
	store storage.Provider,
	gate *auth.Gate,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		songRepo:       songRepo,
		mediaRepo:      mediaRepo,
		practiceRepo:   practiceRepo,
		memberRepo:     memberRepo,
		personalRepo:   personalRepo,
		suggestionRepo: suggestionRepo,
		store:          store,
		gate:           gate,
		cfg:            cfg,
	}
}

// pathID extracts an integer path variable from the request.
func pathID(r *http.Request, name string) (int64, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

var nonAlphaNumeric = regexp.MustCompile(`[^a-zA-Z0-9_\-\.]`)
var multipleSpaces = regexp.MustCompile(`\s+`)

// sanitizeFilename makes an uploaded filename safe for storage keys.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = multipleSpaces.ReplaceAllString(name, "_")
	name = nonAlphaNumeric.ReplaceAllString(name, "")

	maxLength := 150
	if len(name) > maxLength {
		name = name[:maxLength]
	}
	if name == "" || name == "." {
		name = "upload.dat"
	}
	return name
}

// generateStoredFilename builds the stored name for an upload:
// {originID}_{YYYYMMDD}_{sanitizedOriginal}. Display code strips the prefix.
func generateStoredFilename(originID int64, originalName string, now time.Time) string {
	return strconv.FormatInt(originID, 10) + "_" + now.Format("20060102") + "_" + sanitizeFilename(originalName)
}
