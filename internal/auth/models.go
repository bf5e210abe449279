package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

// The two token families carry intentionally different claim shapes, so they
// are modelled as distinct types instead of one loosely-typed payload. Access
// tokens are signed with the primary secret, refresh tokens with a separate
// refresh secret; a token from one family never verifies as the other.

// AccessClaims is the payload of an access token issued at login/register.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token.
type RefreshClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
