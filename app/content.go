package app

import (
	"context"

	"github.com/espectro-app/espectro/domain"
)

// Filter narrows a content listing. Empty fields do not filter.
type Filter struct {
	Category   string
	Difficulty string // activities only
	Search     string
}

// ContentService fetches articles and activities.
type ContentService interface {
	ListArticles(ctx context.Context, f Filter) ([]domain.Article, error)
	GetArticle(ctx context.Context, id string) (domain.Article, error)
	ListActivities(ctx context.Context, f Filter) ([]domain.Activity, error)
	GetActivity(ctx context.Context, id string) (domain.Activity, error)
}
