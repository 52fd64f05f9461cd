package auth

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/espectro-app/espectro/domain"
)

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// Session is the process-wide authentication context. It is created once at
// startup, shared by the gateway client and the TUI, and torn down by Logout.
type Session struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	token   string
	user    domain.User
	expires time.Time
	hooks   []func()
}

// NewSession restores the stored session. An unreadable or expired token is
// discarded and the session starts logged out.
func NewSession(store Store, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{store: store, logger: logger, now: time.Now}
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return s, nil
	}
	claims, err := ParseClaims(token)
	if err != nil || claims.Expired(s.now()) {
		logger.Info("discarding stored session", zap.Error(err))
		if err := store.Clear(); err != nil {
			return nil, err
		}
		return s, nil
	}
	s.setLocked(token, claims.User(), claims)
	return s, nil
}

// Start replaces the session with a freshly issued token and persists it.
// Fields missing from the token claims are taken from user.
func (s *Session) Start(token string, user domain.User) error {
	claims, err := ParseClaims(token)
	if err != nil {
		return err
	}
	u := claims.User()
	if u.ID == "" {
		u.ID = user.ID
	}
	if u.Name == "" {
		u.Name = user.Name
	}
	if u.Email == "" {
		u.Email = user.Email
	}
	if u.Role == "" {
		u.Role = user.Role
	}
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.mu.Lock()
	s.setLocked(token, u, claims)
	s.mu.Unlock()
	s.logger.Info("session started", zap.String("user", u.ID), zap.String("role", string(u.Role)))
	return nil
}

func (s *Session) setLocked(token string, u domain.User, c Claims) {
	s.token = token
	s.user = u
	s.expires = time.Time{}
	if c.ExpiresAt != nil {
		s.expires = c.ExpiresAt.Time
	}
}

// AccessToken returns the bearer token, or ErrUnauthorized when logged out.
func (s *Session) AccessToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.expiredLocked() {
		return "", fmt.Errorf("no active session: %w", domain.ErrUnauthorized)
	}
	return s.token, nil
}

// Valid reports whether a usable token is held.
func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !s.expiredLocked()
}

func (s *Session) expiredLocked() bool {
	return !s.expires.IsZero() && !s.now().Before(s.expires)
}

// User returns the logged-in user.
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.token != ""
}

// OnLogout registers fn to run on every teardown.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Logout clears the session in memory and on disk. Hooks run once per
// teardown: a second Logout on an already-empty session does nothing.
func (s *Session) Logout() error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return s.store.Clear()
	}
	s.token = ""
	s.user = domain.User{}
	s.expires = time.Time{}
	hooks := append([]func(){}, s.hooks...)
	s.mu.Unlock()

	err := s.store.Clear()
	for _, fn := range hooks {
		fn()
	}
	s.logger.Info("session ended")
	return err
}
