package models

import "time"

// Session identifies one browser. Its ID scopes the storage slot the
// browser's widget persists into.
type Session struct {
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
