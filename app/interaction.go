package app

import (
	"context"

	"github.com/espectro-app/espectro/domain"
)

// InteractionService is the remote side of likes and favorites.
type InteractionService interface {
	// ListMine returns the current user's records of the given kind,
	// including nested content where the server still has it.
	ListMine(ctx context.Context, kind domain.InteractionKind) ([]domain.Interaction, error)

	// Toggle flips the user's mark on ref and returns the new state.
	Toggle(ctx context.Context, kind domain.InteractionKind, ref domain.ContentRef) (domain.ToggleResult, error)
}

// CommentService reads and writes comments under content.
type CommentService interface {
	List(ctx context.Context, ref domain.ContentRef) ([]domain.Comment, error)
	Add(ctx context.Context, ref domain.ContentRef, body string) (domain.Comment, error)
}
