package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uprala/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"golang.org/x/crypto/bcrypt"
)

const localIssuer = "uprala"

type AdminUserStore interface {
	AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error)
}

// LocalProvider checks credentials against the admin_users table and signs
// HS256 tokens with a shared secret.
type LocalProvider struct {
	users  AdminUserStore
	secret []byte
	ttl    time.Duration
}

func NewLocalProvider(users AdminUserStore, secret string, ttl time.Duration) *LocalProvider {
	return &LocalProvider{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (p *LocalProvider) Login(ctx context.Context, username, password string) (*types.AdminToken, error) {

	user, err := p.users.AdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, types.ErrInvalidCredentials
	}

	return p.issue(user, time.Now())
}

func (p *LocalProvider) issue(user *types.AdminUser, now time.Time) (*types.AdminToken, error) {
	expiresAt := now.Add(p.ttl)

	token, err := jwt.NewBuilder().
		Issuer(localIssuer).
		Subject(user.ID).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim(usernameClaim, user.Username).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), p.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &types.AdminToken{Token: string(signed), ExpiresAt: expiresAt}, nil
}

func (p *LocalProvider) Verify(ctx context.Context, token string) (*types.AdminClaims, error) {

	parsed, err := jwt.Parse(
		[]byte(token),
		jwt.WithKey(jwa.HS256(), p.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(localIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidToken, err)
	}

	return claimsFromToken(parsed)
}
