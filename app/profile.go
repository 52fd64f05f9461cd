package app

import (
	"context"

	"github.com/espectro-app/espectro/domain"
)

// ProfileService manages the autism profiles owned by the current user.
type ProfileService interface {
	List(ctx context.Context) ([]domain.AutismProfile, error)
	Get(ctx context.Context, id string) (domain.AutismProfile, error)
	Create(ctx context.Context, p domain.AutismProfile) (domain.AutismProfile, error)
	Update(ctx context.Context, p domain.AutismProfile) (domain.AutismProfile, error)
	Delete(ctx context.Context, id string) error
}
