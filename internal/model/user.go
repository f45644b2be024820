package model

import "time"

// User represents the account a session is authenticated as.
//
// There is exactly one user in this system: the mock user shipped with the
// catalog fixture. Login always resolves to it.
//
// WHY IS Favorites A PLAIN SLICE HERE?
// The session owns the authoritative favorites set. The Favorites field on a
// User value is a derived view that session.Session fills in when it hands the
// user out, so there is never a second copy to keep in sync.
type User struct {
	ID          string       `json:"id"                yaml:"id"`
	Name        string       `json:"name"              yaml:"name"`
	Email       string       `json:"email"             yaml:"email"`
	Avatar      string       `json:"avatar,omitempty"  yaml:"avatar"`
	Favorites   []string     `json:"favorites"         yaml:"favorites"`
	Collections []Collection `json:"collections"       yaml:"collections"`
	CreatedAt   time.Time    `json:"createdAt"         yaml:"createdAt"`
}

// Collection is a named grouping of prompt ids owned by a user.
type Collection struct {
	ID          string    `json:"id"          yaml:"id"`
	Name        string    `json:"name"        yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Prompts     []string  `json:"prompts"     yaml:"prompts"`
	IsPublic    bool      `json:"isPublic"    yaml:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"   yaml:"createdAt"`
}
