package domain

import "time"

// Bookmark links a user to a saved article. A user bookmarks an article at most once.
type Bookmark struct {
	ID        string
	UserID    string
	NewsID    string
	CreatedAt time.Time
}

// Saved is a bookmark joined with the article fields shown in the bookmark list.
type Saved struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	News      NewsRef   `json:"news"`
}

type NewsRef struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Excerpt *string `json:"excerpt"`
}
