package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// contentService implements app.ContentService over the gateway.
type contentService struct {
	client *Client
}

// NewContentService creates a ContentService backed by the gateway.
func NewContentService(client *Client) app.ContentService {
	return &contentService{client: client}
}

func (s *contentService) ListArticles(ctx context.Context, f app.Filter) ([]domain.Article, error) {
	var payload []articleJSON
	if err := s.client.get(ctx, "/articles"+filterQuery(f, false), &payload); err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	out := make([]domain.Article, 0, len(payload))
	for _, a := range payload {
		out = append(out, a.toDomain())
	}
	return out, nil
}

func (s *contentService) GetArticle(ctx context.Context, id string) (domain.Article, error) {
	var payload articleJSON
	if err := s.client.get(ctx, "/articles/"+url.PathEscape(id), &payload); err != nil {
		return domain.Article{}, fmt.Errorf("fetching article %s: %w", id, err)
	}
	return payload.toDomain(), nil
}

func (s *contentService) ListActivities(ctx context.Context, f app.Filter) ([]domain.Activity, error) {
	var payload []activityJSON
	if err := s.client.get(ctx, "/activities"+filterQuery(f, true), &payload); err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	out := make([]domain.Activity, 0, len(payload))
	for _, a := range payload {
		out = append(out, a.toDomain())
	}
	return out, nil
}

func (s *contentService) GetActivity(ctx context.Context, id string) (domain.Activity, error) {
	var payload activityJSON
	if err := s.client.get(ctx, "/activities/"+url.PathEscape(id), &payload); err != nil {
		return domain.Activity{}, fmt.Errorf("fetching activity %s: %w", id, err)
	}
	return payload.toDomain(), nil
}

func filterQuery(f app.Filter, withDifficulty bool) string {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if withDifficulty && f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
