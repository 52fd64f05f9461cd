package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/espectro-app/espectro/app"
	"github.com/espectro-app/espectro/domain"
)

// authService implements app.AuthService over the gateway.
type authService struct {
	client *Client
}

// NewAuthService creates an AuthService backed by the gateway.
func NewAuthService(client *Client) app.AuthService {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, creds domain.Credentials) (string, domain.User, error) {
	if err := creds.Validate(); err != nil {
		return "", domain.User{}, err
	}
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{creds.Email, creds.Password}
	var payload struct {
		Token string   `json:"token"`
		User  userJSON `json:"user"`
	}
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", in, &payload, false); err != nil {
		return "", domain.User{}, fmt.Errorf("logging in: %w", err)
	}
	if payload.Token == "" {
		return "", domain.User{}, fmt.Errorf("logging in: response has no token")
	}
	return payload.Token, payload.User.toDomain(), nil
}

func (s *authService) Me(ctx context.Context) (domain.User, error) {
	var payload userJSON
	if err := s.client.get(ctx, "/auth/me", &payload); err != nil {
		return domain.User{}, fmt.Errorf("fetching current user: %w", err)
	}
	return payload.toDomain(), nil
}
