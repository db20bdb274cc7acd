// Package media resolves stored media records to display categories and
// names. The archive stores filenames as {originID}_{YYYYMMDD}_{originalName}
// and its recorded file_type is unreliable for legacy rows, so everything
// here works from the filename convention. Keep that convention isolated in
// this package: if the service ever grows a structured display_name field,
// this is the only place that changes.
package media

import (
	"path/filepath"
	"strings"
)

// Category is the canonical media category used for players and icons.
type Category string

const (
	CategoryAudio    Category = "audio"
	CategoryVideo    Category = "video"
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
)

var audioExtensions = map[string]bool{
	"mp3": true, "wav": true, "ogg": true, "m4a": true, "aac": true, "flac": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "webm": true, "mov": true, "avi": true, "mkv": true,
}

var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
}

// ResolveCategory maps a declared type and filename to a category. A declared
// type other than "document" is trusted verbatim; "document" (or no declared
// type) falls through to extension inference, because legacy rows were all
// stored as documents regardless of content.
func ResolveCategory(declaredType, filename string) Category {
	if declaredType != "" && declaredType != string(CategoryDocument) {
		return Category(declaredType)
	}
	return categoryFromExtension(filename)
}

func categoryFromExtension(filename string) Category {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch {
	case audioExtensions[ext]:
		return CategoryAudio
	case videoExtensions[ext]:
		return CategoryVideo
	case imageExtensions[ext]:
		return CategoryImage
	}
	return CategoryDocument
}

// IconFor returns the display glyph for a category.
func IconFor(category Category) string {
	switch category {
	case CategoryAudio:
		return "🎵"
	case CategoryVideo:
		return "🎬"
	case CategoryImage:
		return "🖼️"
	case CategoryDocument:
		return "📄"
	}
	return "📁"
}

// StripGeneratedPrefix removes the generated {originID}_{YYYYMMDD}_ prefix
// from a stored filename. Filenames that don't match the convention are
// returned unchanged, which also makes the function idempotent: a stripped
// name no longer starts with the digit/digit pair.
func StripGeneratedPrefix(filename string) string {
	parts := strings.Split(filename, "_")
	if len(parts) >= 3 && allDigits(parts[0]) && len(parts[1]) == 8 && allDigits(parts[1]) {
		return strings.Join(parts[2:], "_")
	}
	return filename
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RecordingAllowed reports whether a personal-log or practice-recording
// upload has an accepted audio or video extension.
func RecordingAllowed(filename string) bool {
	c := categoryFromExtension(filename)
	return c == CategoryAudio || c == CategoryVideo
}
