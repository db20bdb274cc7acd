package model

import "time"

// Suggestion is a proposed future song with up/down vote counters.
type Suggestion struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"size:100;not null"`
	Artist     string    `json:"artist" gorm:"size:100;not null"`
	Link       string    `json:"link" gorm:"size:200;not null"`
	Memo       string    `json:"memo,omitempty" gorm:"type:text"`
	ThumbsUp   int       `json:"thumbs_up" gorm:"default:0"`
	ThumbsDown int       `json:"thumbs_down" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
}

// Score is the ranking key for the suggestion board.
func (s Suggestion) Score() int {
	return s.ThumbsUp - s.ThumbsDown
}
