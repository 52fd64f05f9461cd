package gateway

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// profileService implements app.ProfileService over the gateway.
type profileService struct {
	client *Client
	now    func() time.Time
}

// NewProfileService creates a ProfileService backed by the gateway.
func NewProfileService(client *Client) app.ProfileService {
	return &profileService{client: client, now: time.Now}
}

func (s *profileService) List(ctx context.Context) ([]domain.AutismProfile, error) {
	var payload []profileJSON
	if err := s.client.get(ctx, "/autism-profiles", &payload); err != nil {
		return nil, fmt.Errorf("listing autism profiles: %w", err)
	}
	out := make([]domain.AutismProfile, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toDomain())
	}
	return out, nil
}

func (s *profileService) Get(ctx context.Context, id string) (domain.AutismProfile, error) {
	var payload profileJSON
	if err := s.client.get(ctx, "/autism-profiles/"+url.PathEscape(id), &payload); err != nil {
		return domain.AutismProfile{}, fmt.Errorf("fetching autism profile %s: %w", id, err)
	}
	return payload.toDomain(), nil
}

func (s *profileService) Create(ctx context.Context, p domain.AutismProfile) (domain.AutismProfile, error) {
	if err := p.Validate(s.now()); err != nil {
		return domain.AutismProfile{}, err
	}
	in := profileToJSON(p)
	in.ID, in.OwnerID = "", ""
	var payload profileJSON
	if err := s.client.post(ctx, "/autism-profiles", in, &payload); err != nil {
		return domain.AutismProfile{}, fmt.Errorf("creating autism profile: %w", err)
	}
	return payload.toDomain(), nil
}

func (s *profileService) Update(ctx context.Context, p domain.AutismProfile) (domain.AutismProfile, error) {
	if p.ID == "" {
		return domain.AutismProfile{}, fmt.Errorf("updating autism profile: %w", domain.ErrNotFound)
	}
	if err := p.Validate(s.now()); err != nil {
		return domain.AutismProfile{}, err
	}
	var payload profileJSON
	if err := s.client.put(ctx, "/autism-profiles/"+url.PathEscape(p.ID), profileToJSON(p), &payload); err != nil {
		return domain.AutismProfile{}, fmt.Errorf("updating autism profile %s: %w", p.ID, err)
	}
	return payload.toDomain(), nil
}

func (s *profileService) Delete(ctx context.Context, id string) error {
	if err := s.client.delete(ctx, "/autism-profiles/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("deleting autism profile %s: %w", id, err)
	}
	return nil
}
