package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name         string
		declaredType string
		filename     string
		want         Category
	}{
		{
			name:         "no declared type falls back to audio extension",
			declaredType: "",
			filename:     "track.flac",
			want:         CategoryAudio,
		},
		{
			name:         "declared document is not trusted when extension is video",
			declaredType: "document",
			filename:     "clip.mp4",
			want:         CategoryVideo,
		},
		{
			name:         "declared non-document wins over contradicting extension",
			declaredType: "image",
			filename:     "x.pdf",
			want:         CategoryImage,
		},
		{
			name:         "unknown extension is a document",
			declaredType: "",
			filename:     "setlist.txt",
			want:         CategoryDocument,
		},
		{
			name:         "extension match is case insensitive",
			declaredType: "",
			filename:     "PHOTO.JPG",
			want:         CategoryImage,
		},
		{
			name:         "no extension is a document",
			declaredType: "",
			filename:     "README",
			want:         CategoryDocument,
		},
		{
			name:         "declared document with document extension stays document",
			declaredType: "document",
			filename:     "score.pdf",
			want:         CategoryDocument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCategory(tt.declaredType, tt.filename))
		})
	}
}

func TestStripGeneratedPrefix(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "generated prefix is stripped",
			filename: "12_20240315_live_take.mp3",
			want:     "live_take.mp3",
		},
		{
			name:     "remainder is rejoined with underscores",
			filename: "7_20250101_my_band_demo.wav",
			want:     "my_band_demo.wav",
		},
		{
			name:     "plain filename is unchanged",
			filename: "chords.pdf",
			want:     "chords.pdf",
		},
		{
			name:     "timestamp segment must be exactly eight digits",
			filename: "12_2024_take.mp3",
			want:     "12_2024_take.mp3",
		},
		{
			name:     "first segment must be all digits",
			filename: "v2_20240315_take.mp3",
			want:     "v2_20240315_take.mp3",
		},
		{
			name:     "two segments are not enough",
			filename: "12_20240315",
			want:     "12_20240315",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripGeneratedPrefix(tt.filename))
		})
	}
}

func TestStripGeneratedPrefixIsIdempotent(t *testing.T) {
	filenames := []string{
		"12_20240315_live_take.mp3",
		"7_20250101_my_band_demo.wav",
		"chords.pdf",
		"v2_20240315_take.mp3",
		"",
	}
	for _, f := range filenames {
		once := StripGeneratedPrefix(f)
		assert.Equal(t, once, StripGeneratedPrefix(once), "filename %q", f)
	}
}

func TestIconFor(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []Category{CategoryAudio, CategoryVideo, CategoryImage, CategoryDocument} {
		icon := IconFor(c)
		assert.NotEmpty(t, icon)
		assert.False(t, seen[icon], "icon for %s reused", c)
		seen[icon] = true
	}
}

func TestRecordingAllowed(t *testing.T) {
	assert.True(t, RecordingAllowed("take.mp3"))
	assert.True(t, RecordingAllowed("session.webm"))
	assert.False(t, RecordingAllowed("notes.pdf"))
	assert.False(t, RecordingAllowed("cover.png"))
}
