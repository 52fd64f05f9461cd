package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/espectro-app/espectro/domain"
)

func signToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Name: "Ana",
		Role: "caregiver",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session")
	store := NewFileStore(path)

	got, err := store.Load()
	if err != nil || got != "" {
		t.Fatalf("missing file should be empty session, got %q err=%v", got, err)
	}
	if err := store.Save("  abc123 \n"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("token file must be private, got %v", info.Mode().Perm())
	}
	got, err = store.Load()
	if err != nil || got != "abc123" {
		t.Fatalf("unexpected token %q err=%v", got, err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clearing twice should not error: %v", err)
	}
	if err := store.Save(" "); err == nil {
		t.Fatalf("expected error saving empty token")
	}
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	c, err := ParseClaims(signToken(t, "u1", exp))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	u := c.User()
	if u.ID != "u1" || u.Name != "Ana" || u.Role != domain.RoleCaregiver {
		t.Fatalf("unexpected user: %#v", u)
	}
	if c.Expired(time.Now()) || !c.Expired(exp.Add(time.Second)) {
		t.Fatalf("unexpected expiry evaluation for %v", exp)
	}
	if _, err := ParseClaims("not-a-jwt"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNewSession_RestoresValidToken(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session"))
	tok := signToken(t, "u1", time.Now().Add(time.Hour))
	if err := store.Save(tok); err != nil {
		t.Fatalf("save: %v", err)
	}

	s, err := NewSession(store, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if !s.Valid() {
		t.Fatalf("expected valid session")
	}
	got, err := s.AccessToken()
	if err != nil || got != tok {
		t.Fatalf("unexpected token err=%v", err)
	}
	if u, ok := s.User(); !ok || u.ID != "u1" {
		t.Fatalf("unexpected user %#v", u)
	}
}

func TestNewSession_DiscardsExpiredToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	store := NewFileStore(path)
	if err := store.Save(signToken(t, "u1", time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("save: %v", err)
	}

	s, err := NewSession(store, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.Valid() {
		t.Fatalf("expired token must not restore a session")
	}
	if _, err := s.AccessToken(); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expired token file should be removed, stat err=%v", err)
	}
}

func TestSession_StartAndLogout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	s, err := NewSession(NewFileStore(path), nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	calls := 0
	s.OnLogout(func() { calls++ })

	tok := signToken(t, "u7", time.Now().Add(time.Hour))
	if err := s.Start(tok, domain.User{Email: "ana@example.com"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	u, _ := s.User()
	if u.ID != "u7" || u.Email != "ana@example.com" {
		t.Fatalf("claims and login user should merge, got %#v", u)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("token should be persisted: %v", err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if calls != 1 {
		t.Fatalf("logout hooks must run once per teardown, ran %d", calls)
	}
	if s.Valid() {
		t.Fatalf("session should be cleared")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("token file should be removed, stat err=%v", err)
	}
}

func TestSession_StartRejectsGarbage(t *testing.T) {
	s, err := NewSession(NewFileStore(filepath.Join(t.TempDir(), "session")), nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.Start("garbage", domain.User{}); err == nil {
		t.Fatalf("expected error for non-jwt token")
	}
	if s.Valid() {
		t.Fatalf("session must stay logged out")
	}
}
