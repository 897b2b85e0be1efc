// Package auth authenticates administrators and verifies the bearer tokens
// they present to the admin API.
package auth

import (
	"context"
	"fmt"

	"uprala/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"golang.org/x/crypto/bcrypt"
)

const usernameClaim = "username"

// Provider issues and verifies admin tokens.
type Provider interface {
	Login(ctx context.Context, username, password string) (*types.AdminToken, error)
	Verify(ctx context.Context, token string) (*types.AdminClaims, error)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func claimsFromToken(token jwt.Token) (*types.AdminClaims, error) {
	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf("%w: missing subject", types.ErrInvalidToken)
	}

	claims := &types.AdminClaims{Subject: subject}

	var username string
	if err := token.Get(usernameClaim, &username); err == nil {
		claims.Username = username
	}

	if exp, ok := token.Expiration(); ok {
		claims.ExpiresAt = exp
	}

	return claims, nil
}
