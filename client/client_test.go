package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientErrorTaxonomy(t *testing.T) {
	t.Run("unreachable host is a NetworkError", func(t *testing.T) {
		mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		mock.Close() // nothing listens anymore

		c := New(mock.URL)
		_, err := c.ListSongs(context.Background(), "", "", "")
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Error(t, netErr.Unwrap())
	})

	t.Run("non-2xx is an HTTPError with status and body", func(t *testing.T) {
		mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"Song not found"}`, http.StatusNotFound)
		}))
		defer mock.Close()

		c := New(mock.URL)
		_, err := c.GetSong(context.Background(), 99)
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Contains(t, httpErr.Body, "Song not found")
	})

	t.Run("oversized upload never reaches the wire", func(t *testing.T) {
		requests := 0
		mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer mock.Close()

		c := New(mock.URL)
		_, err := c.UploadWithProgress(context.Background(), "/songs/1/media", "set.mov",
			strings.NewReader("x"), MaxUploadSize+1, nil, nil)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Message, "set.mov")
		assert.Equal(t, 0, requests)
	})

	t.Run("suggestion delete 403 becomes AuthError", func(t *testing.T) {
		mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"Invalid password"}`, http.StatusForbidden)
		}))
		defer mock.Close()

		c := New(mock.URL)
		err := c.DeleteSuggestion(context.Background(), 1, "nope")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
	})
}

func TestUploadProgressContract(t *testing.T) {
	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		w.Write([]byte(`{}`))
	}))
	defer mock.Close()

	c := New(mock.URL)
	content := strings.Repeat("a", 64<<10)

	var progress []float64
	_, err := c.UploadWithProgress(context.Background(), "/songs/1/media", "riff.wav",
		strings.NewReader(content), int64(len(content)), nil, func(pct float64) {
			progress = append(progress, pct)
		})
	require.NoError(t, err)
	require.NotEmpty(t, progress)

	for i, pct := range progress {
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, pct, progress[i-1])
		}
	}
}

func TestProgressReaderMonotonicOverReportedSize(t *testing.T) {
	// A reader that yields more bytes than the declared size must still never
	// report above 100.
	var progress []float64
	r := newProgressReader(strings.NewReader(strings.Repeat("b", 2048)), 1024, func(pct float64) {
		progress = append(progress, pct)
	})

	buf := make([]byte, 256)
	for {
		if _, err := r.Read(buf); err != nil {
			break
		}
	}

	require.NotEmpty(t, progress)
	assert.Equal(t, 100.0, progress[len(progress)-1])
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
}
