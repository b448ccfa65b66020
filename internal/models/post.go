package models

import "time"

// Post represents a row in the PostgreSQL posts table. UserName is joined
// from the owning user at query time and is not a column.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserName  string    `json:"user_name,omitempty"`
}

// CreatePostRequest is the JSON body for POST /api/posts.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Stats aggregates community counters for GET /api/posts?stats=true.
// UserPosts is zero for anonymous callers.
type Stats struct {
	TotalPosts int64 `json:"totalPosts"`
	TotalUsers int64 `json:"totalUsers"`
	UserPosts  int64 `json:"userPosts"`
}
