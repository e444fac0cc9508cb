package domain

import "time"

// Post is the domain entity for a blog entry. Posts have no owner:
// any session, logged in or not, may create one.
type Post struct {
	ID           int64
	Subject      string
	Content      string
	CreatedAt    time.Time
	LastModified time.Time
}
