package middleware

import (
	"context"
	"net/http"
	"strings"

	"ledgerly/internal/shared/config"
	"ledgerly/internal/shared/constants"
	"ledgerly/internal/shared/utils/response"
	"ledgerly/internal/users"
	"ledgerly/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys populated by the guard for downstream handlers.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
)

// UserResolver looks up the user record referenced by verified claims.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*users.User, error)
}

// JWTAuthWithConfig creates the access guard. It is a hard gate: any
// verification failure rejects the request before the handler runs. On
// success the resolved identity projection is attached to the request
// context.
func JWTAuthWithConfig(cfg *config.Config, resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token claims", nil, nil)
			c.Abort()
			return
		}

		// A token whose validity window is empty or negative is rejected
		// even when the signature verifies.
		iat, iatOK := claims["iat"].(float64)
		exp, expOK := claims["exp"].(float64)
		if !iatOK || !expOK || exp-iat <= 0 {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token timing", nil, nil)
			c.Abort()
			return
		}

		userID, _ := claims[ContextUserIDKey].(string)
		if userID == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token claims", nil, nil)
			c.Abort()
			return
		}

		identity, err := resolveIdentity(c.Request.Context(), resolver, userID)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "User not found", nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserKey, *identity)

		c.Next()
	}
}

// resolveIdentity fetches the identity projection for a user id, via the
// short-lived redis cache when one is configured.
func resolveIdentity(ctx context.Context, resolver UserResolver, userID string) (*users.Projection, error) {
	fetch := func() (*users.Projection, error) {
		user, err := resolver.GetUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		projection := user.Project()
		return &projection, nil
	}

	if !cache.IsInitialized() {
		return fetch()
	}

	var projection users.Projection
	err := cache.NewService(cache.Client()).GetOrSet(ctx, constants.BuildUserIdentityKey(userID), constants.TTL_USER_IDENTITY,
		func() (interface{}, error) { return fetch() }, &projection)
	if err != nil {
		return nil, err
	}
	return &projection, nil
}

// UserIDFromContext returns the authenticated user id set by the guard.
func UserIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}

// IdentityFromContext returns the identity projection set by the guard.
func IdentityFromContext(c *gin.Context) (users.Projection, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return users.Projection{}, false
	}
	identity, ok := value.(users.Projection)
	return identity, ok
}
