package domain

import (
	"errors"
	"time"
)

// ErrConflict is returned by Create when a unique constraint (content hash or canonical URL) rejects the insert.
var ErrConflict = errors.New("news: conflicting article already exists")

// News is an ingested article. ContentHash is the fingerprint of title and raw content.
type News struct {
	ID                string     `json:"id"`
	SourceURL         string     `json:"sourceUrl"`
	CanonicalURL      *string    `json:"canonicalUrl"`
	SourceName        *string    `json:"sourceName"`
	Title             string     `json:"title"`
	Excerpt           *string    `json:"excerpt"`
	ContentRaw        *string    `json:"contentRaw"`
	ContentClean      *string    `json:"contentClean"`
	ContentHash       string     `json:"contentHash"`
	Language          string     `json:"language"`
	Market            *string    `json:"market"`
	PublishedAtSource *time.Time `json:"publishedAtSource"`
	ScrapedAt         time.Time  `json:"scrapedAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ListFilter selects a page of articles. Nil fields do not filter.
type ListFilter struct {
	Market        *string
	ConfidenceMin *int // only articles with an analysis at or above this score
	Limit         int
	Offset        int
}

// SearchFilter is a case-insensitive substring match on title or clean content.
type SearchFilter struct {
	Query  string
	Market *string
	Limit  int
}
