package models

import (
	"time"
)

// Article represents a published article entry. Articles are created
// through the password-gated endpoint and never deleted by this
// service; CommentCount is adjusted only by the comment write saga.
type Article struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Link         string    `json:"link" db:"link"`
	Category     string    `json:"category" db:"category"`
	CommentCount int       `json:"commentcount" db:"commentcount"`
	CreatedAt    time.Time `json:"time" db:"time"`
}
