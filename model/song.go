package model

import "time"

// Song statuses accepted by the archive.
const (
	StatusPractice  = "Practice"
	StatusCompleted = "Completed"
	StatusOnHold    = "OnHold"
)

// ValidStatus reports whether s is one of the accepted song statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPractice, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Song represents a song in the band's catalog. The id is assigned by the
// archive service and never reassigned. Media order reflects storage order.
type Song struct {
	ID         int64        `json:"id" gorm:"primaryKey"`
	Title      string       `json:"title" gorm:"size:100;not null"`
	Artist     string       `json:"artist" gorm:"size:100;not null"`
	Status     string       `json:"status" gorm:"size:20;default:Practice"`
	Genre      string       `json:"genre,omitempty" gorm:"size:50"`
	Difficulty int          `json:"difficulty" gorm:"default:3"`
	Lyrics     string       `json:"lyrics,omitempty" gorm:"type:text"`
	Chords     string       `json:"chords,omitempty" gorm:"type:text"`
	Link       string       `json:"link,omitempty" gorm:"size:200"`
	Memo       string       `json:"memo,omitempty" gorm:"type:text"`
	Media      []MediaAsset `json:"media" gorm:"foreignKey:SongID"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// SongDraft carries the client-editable fields of a song. Pointer fields
// distinguish "not sent" from "set to empty" on update.
type SongDraft struct {
	Title      *string `json:"title,omitempty"`
	Artist     *string `json:"artist,omitempty"`
	Status     *string `json:"status,omitempty"`
	Genre      *string `json:"genre,omitempty"`
	Difficulty *int    `json:"difficulty,omitempty"`
	Lyrics     *string `json:"lyrics,omitempty"`
	Chords     *string `json:"chords,omitempty"`
	Link       *string `json:"link,omitempty"`
	Memo       *string `json:"memo,omitempty"`
}
