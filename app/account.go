package app

import (
	"context"

	"github.com/espectro-app/espectro/domain"
)

// AuthService exchanges credentials for a bearer token.
type AuthService interface {
	// Login returns a token and the account it belongs to.
	Login(ctx context.Context, creds domain.Credentials) (string, domain.User, error)

	// Me returns the account of the current session.
	Me(ctx context.Context) (domain.User, error)
}
