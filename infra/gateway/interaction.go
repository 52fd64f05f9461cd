package gateway

import (
	"context"
	"fmt"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// interactionService implements app.InteractionService over the gateway.
type interactionService struct {
	client *Client
}

// NewInteractionService creates an InteractionService backed by the gateway.
func NewInteractionService(client *Client) app.InteractionService {
	return &interactionService{client: client}
}

func collection(kind domain.InteractionKind) string {
	if kind == domain.Favorite {
		return "/favorites"
	}
	return "/likes"
}

func (s *interactionService) ListMine(ctx context.Context, kind domain.InteractionKind) ([]domain.Interaction, error) {
	var payload []interactionJSON
	if err := s.client.get(ctx, collection(kind)+"/me", &payload); err != nil {
		return nil, fmt.Errorf("listing my %ss: %w", kind, err)
	}
	out := make([]domain.Interaction, 0, len(payload))
	for _, rec := range payload {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (s *interactionService) Toggle(ctx context.Context, kind domain.InteractionKind, ref domain.ContentRef) (domain.ToggleResult, error) {
	if !ref.Valid() {
		return domain.ToggleResult{}, domain.ErrInvalidRef
	}
	var payload struct {
		Liked     *bool  `json:"liked"`
		Favorited *bool  `json:"favorited"`
		Message   string `json:"message"`
	}
	if err := s.client.post(ctx, collection(kind)+"/toggle", ref, &payload); err != nil {
		return domain.ToggleResult{}, fmt.Errorf("toggling %s on %s: %w", kind, ref, err)
	}

	state := payload.Liked
	if kind == domain.Favorite {
		state = payload.Favorited
	}
	if state == nil {
		return domain.ToggleResult{}, fmt.Errorf("toggling %s on %s: response has no state", kind, ref)
	}
	return domain.ToggleResult{Kind: kind, Active: *state, Message: clean(payload.Message)}, nil
}
