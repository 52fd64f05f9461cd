package sandbox

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userID"

type tokenClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the account with the given email, valid for ttl.
func (s *Server) IssueToken(email string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	acct, ok := s.accountByEmail(email)
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown account %q", email)
	}
	return s.sign(acct, ttl)
}

func (s *Server) sign(acct account, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Name:  acct.name,
		Email: acct.email,
		Role:  acct.role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acct.id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) accountByEmail(email string) (account, bool) {
	for _, a := range s.accounts {
		if strings.EqualFold(a.email, email) {
			return a, true
		}
	}
	return account{}, false
}

func (s *Server) accountByID(id string) (account, bool) {
	for _, a := range s.accounts {
		if a.id == id {
			return a, true
		}
	}
	return account{}, false
}

func accountJSON(a account) gin.H {
	return gin.H{"id": a.id, "name": a.name, "email": a.email, "role": a.role}
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	acct, ok := s.accountByEmail(req.Email)
	s.mu.Unlock()
	if !ok || acct.password != req.Password {
		errorJSON(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.sign(acct, 24*time.Hour)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": accountJSON(acct)})
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			errorJSON(c, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		var claims tokenClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	acct, ok := s.accountByID(c.GetString(userIDKey))
	s.mu.Unlock()
	if !ok {
		errorJSON(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, accountJSON(acct))
}
