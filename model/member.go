package model

import "time"

// Member is a band member. Deleting a member cascades to their personal logs.
type Member struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	Instrument string    `json:"instrument" gorm:"size:100;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// PersonalLog is a member's own practice recording.
type PersonalLog struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	MemberID         int64     `json:"member_id" gorm:"index;not null"`
	Title            string    `json:"title" gorm:"size:200;not null"`
	Filename         string    `json:"filename" gorm:"size:200;not null"`
	OriginalFilename string    `json:"original_filename,omitempty" gorm:"size:200"`
	FileType         string    `json:"file_type" gorm:"size:20"`
	CreatedAt        time.Time `json:"created_at"`
}
