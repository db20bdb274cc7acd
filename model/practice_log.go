package model

import "time"

// PracticeLog is a dated practice note attached to exactly one song. The
// recording filename is optional and set by a separate upload call.
type PracticeLog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	SongID    int64     `json:"song_id" gorm:"index;not null"`
	Date      time.Time `json:"date"`
	Content   string    `json:"content,omitempty" gorm:"type:text"`
	Feedback  string    `json:"feedback,omitempty" gorm:"type:text"`
	Recording string    `json:"recording,omitempty" gorm:"size:200"`
}

// PracticeLogDraft carries the editable fields of a practice log.
type PracticeLogDraft struct {
	Content  *string `json:"content,omitempty"`
	Feedback *string `json:"feedback,omitempty"`
}
