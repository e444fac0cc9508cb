package domain

import "time"

// User is the domain entity for a registered account.
// The password is kept exactly as submitted; this app does no hashing.
type User struct {
	ID           int64
	Username     string
	Password     string
	Email        string
	CreatedAt    time.Time
	LastModified time.Time
}
