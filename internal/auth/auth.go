package auth

import (
	"context"
	"time"

	"github.com/docconnect/docconnect/internal"
	"github.com/docconnect/docconnect/internal/core/datamodel/user"
	"github.com/golang-jwt/jwt/v5"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) (AuthTokens, error)
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetProfile(userID string) (*user.Profile, error)
}

type RepositoryAPI interface {
	Create(p *user.Profile) error
	GetByEmail(email string) (*user.Profile, error)
	GetByID(id string) (*user.Profile, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID, email, role string) (token string, err error)
	GenerateRefreshToken(userID, email, role string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims carries the verified caller identity inside a JWT.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() internal.Identity {
	return internal.Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// IdentityFromContext re-exports the request identity lookup so handlers in
// other packages do not import internal directly for it.
func IdentityFromContext(ctx context.Context) (internal.Identity, bool) {
	return internal.IdentityFromContext(ctx)
}
