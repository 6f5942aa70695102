package domain

import "time"

// Post is a user-owned text entry. UserID is set at creation and never
// reassigned; only the owner may change or delete the post.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"date"`
}
