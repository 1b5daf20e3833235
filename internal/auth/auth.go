package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/subflow/subflow/internal/config"
	ierr "github.com/subflow/subflow/internal/errors"
)

// Claims carries the authenticated identity: the acting user and whether it
// holds the admin capability.
type Claims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Provider validates bearer tokens issued by the external auth system
type Provider struct {
	secret []byte
}

func NewProvider(cfg *config.Configuration) *Provider {
	return &Provider{secret: []byte(cfg.Auth.Secret)}
}

// ValidateToken parses and verifies a bearer token and returns its claims
func (p *Provider) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthorized)
	}
	return claims, nil
}

// GenerateToken issues a signed token. Used by local tooling and tests; in
// production tokens come from the external auth system sharing the secret.
func (p *Provider) GenerateToken(userID string, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
