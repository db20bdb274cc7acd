package model

import "time"

// MediaAsset is a file attached to a song. The stored filename is generated
// by the service as {songID}_{YYYYMMDD}_{originalName}; file_type may be
// absent or wrong for legacy rows, so display code must fall back to
// extension inference.
type MediaAsset struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	SongID    int64     `json:"song_id" gorm:"index;not null"`
	Filename  string    `json:"filename" gorm:"size:200;not null"`
	FileType  string    `json:"file_type,omitempty" gorm:"size:20"`
	FileSize  int64     `json:"file_size"`
	URL       string    `json:"url" gorm:"size:200"`
	CreatedAt time.Time `json:"created_at"`
}
