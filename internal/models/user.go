package models

import (
	"strconv"
	"time"
)

// User represents a registered trainer account
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerKey returns the key under which this user's documents, cache
// entries and activity counters are scoped
func (u *User) OwnerKey() string {
	return strconv.FormatInt(u.ID, 10)
}

// Session represents an issued API token
type Session struct {
	TokenID   string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
