package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// commentService implements app.CommentService over the gateway.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the gateway.
func NewCommentService(client *Client) app.CommentService {
	return &commentService{client: client}
}

func (s *commentService) List(ctx context.Context, ref domain.ContentRef) ([]domain.Comment, error) {
	if !ref.Valid() {
		return nil, domain.ErrInvalidRef
	}
	q := url.Values{}
	q.Set(ref.ForeignKey(), ref.ID())
	var payload []commentJSON
	if err := s.client.get(ctx, "/comments?"+q.Encode(), &payload); err != nil {
		return nil, fmt.Errorf("listing comments on %s: %w", ref, err)
	}
	out := make([]domain.Comment, 0, len(payload))
	for _, c := range payload {
		out = append(out, c.toDomain())
	}
	return out, nil
}

func (s *commentService) Add(ctx context.Context, ref domain.ContentRef, body string) (domain.Comment, error) {
	if !ref.Valid() {
		return domain.Comment{}, domain.ErrInvalidRef
	}
	body, err := domain.NormalizeComment(body)
	if err != nil {
		return domain.Comment{}, err
	}
	req := map[string]string{ref.ForeignKey(): ref.ID(), "content": body}
	var payload commentJSON
	if err := s.client.post(ctx, "/comments", req, &payload); err != nil {
		return domain.Comment{}, fmt.Errorf("commenting on %s: %w", ref, err)
	}
	return payload.toDomain(), nil
}
