// Package service toggles and lists a user's bookmarked articles.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/VictorSaf/ainvestfeed/internal/bookmark/domain"
	"github.com/VictorSaf/ainvestfeed/internal/db"
	newsdomain "github.com/VictorSaf/ainvestfeed/internal/news/domain"
	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
)

var ErrNewsNotFound = apperr.NotFound("News not found")

// Repo is the bookmark repository used by the service.
type Repo interface {
	Get(ctx context.Context, userID, newsID string) (*domain.Bookmark, error)
	Create(ctx context.Context, b *domain.Bookmark) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Saved, error)
}

// NewsLookup resolves the article being bookmarked.
type NewsLookup interface {
	GetByID(ctx context.Context, id string) (*newsdomain.News, error)
}

// ToggleResult reports the bookmark state after a toggle. ID is set only when bookmarked.
type ToggleResult struct {
	Bookmarked bool   `json:"bookmarked"`
	ID         string `json:"id,omitempty"`
}

type BookmarkService struct {
	repo Repo
	news NewsLookup
}

func NewBookmarkService(repo Repo, news NewsLookup) *BookmarkService {
	return &BookmarkService{repo: repo, news: news}
}

// Toggle removes the user's bookmark on newsID if present, otherwise creates it.
// Reads the store directly, not through the news cache.
func (s *BookmarkService) Toggle(ctx context.Context, userID, newsID string) (ToggleResult, error) {
	n, err := s.news.GetByID(ctx, newsID)
	if err != nil {
		return ToggleResult{}, err
	}
	if n == nil {
		return ToggleResult{}, ErrNewsNotFound
	}
	existing, err := s.repo.Get(ctx, userID, newsID)
	if err != nil {
		return ToggleResult{}, err
	}
	if existing != nil {
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return ToggleResult{}, err
		}
		return ToggleResult{Bookmarked: false}, nil
	}
	b := &domain.Bookmark{ID: uuid.New().String(), UserID: userID, NewsID: newsID, CreatedAt: time.Now().UTC()}
	if err := s.repo.Create(ctx, b); err != nil {
		if db.IsUniqueViolation(err) {
			// Double-submit: the other request already bookmarked it.
			if again, gerr := s.repo.Get(ctx, userID, newsID); gerr == nil && again != nil {
				return ToggleResult{Bookmarked: true, ID: again.ID}, nil
			}
		}
		return ToggleResult{}, err
	}
	return ToggleResult{Bookmarked: true, ID: b.ID}, nil
}

// List returns the user's bookmarks, newest first.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]domain.Saved, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Saved{}
	}
	return list, nil
}
