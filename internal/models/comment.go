package models

import (
	"time"
)

// Comment represents a comment on an article. Comments are immutable
// once written. GitHubID is the stable identity returned by the token
// verifier and doubles as the comment cooldown key.
type Comment struct {
	ID        int64     `json:"-" db:"id"`
	ArticleID int64     `json:"-" db:"articleid"`
	Username  string    `json:"username" db:"username"`
	Client    string    `json:"client" db:"client"`
	OS        string    `json:"os" db:"os"`
	Content   string    `json:"content" db:"content"`
	GitHubID  int64     `json:"githubid" db:"githubid"`
	FromIP    string    `json:"-" db:"fromip"`
	CreatedAt time.Time `json:"time" db:"time"`
}

// MaxContentLength is the maximum comment content length in
// characters, measured after sanitization (entity encoding can only
// grow the content, never shrink it).
const MaxContentLength = 1000
