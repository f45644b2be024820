package model

import "time"

// SessionRecord is the storable form of one browser session.
//
// UserID is empty while the session is anonymous. Favorites is the single
// authoritative favorites list, in the order the prompts were marked.
type SessionRecord struct {
	ID        string    `json:"id"        db:"id"`
	UserID    string    `json:"userId"    db:"user_id"`
	Favorites []string  `json:"favorites" db:"favorites"` // stored as a JSON array
	DarkMode  bool      `json:"darkMode"  db:"dark_mode"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
