package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledgerly/internal/shared/config"
	"ledgerly/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	user *users.User
	err  error
}

func (s *stubResolver) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func guardTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:        "guard-test-secret",
			RefreshSecret: "guard-test-refresh-secret",
			ExpiresIn:     time.Hour,
		},
	}
}

func signGuardToken(t *testing.T, secret, userID string, iat, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     iat.Unix(),
		"exp":     exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newGuardedEngine(cfg *config.Config, resolver UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", JWTAuthWithConfig(cfg, resolver), func(c *gin.Context) {
		userID, _ := UserIDFromContext(c)
		identity, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": identity.Email})
	})
	return engine
}

func performRequest(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGuardRejectsMissingHeader(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{})

	rec := performRequest(engine, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsMalformedHeader(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{})

	for _, header := range []string{"garbage", "Basic abc123", "Bearer"} {
		rec := performRequest(engine, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestGuardRejectsInvalidToken(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{})

	rec := performRequest(engine, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsWrongSecret(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{})

	now := time.Now()
	token := signGuardToken(t, "some-other-secret", uuid.NewString(), now, now.Add(time.Hour))
	rec := performRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsExpiredToken(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{})

	now := time.Now()
	token := signGuardToken(t, "guard-test-secret", uuid.NewString(), now.Add(-2*time.Hour), now.Add(-time.Hour))
	rec := performRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsEmptyValidityWindow(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{})

	// Signature verifies and exp is in the future, but exp == iat
	future := time.Now().Add(time.Hour)
	token := signGuardToken(t, "guard-test-secret", uuid.NewString(), future, future)
	rec := performRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsMissingUserClaim(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{})

	now := time.Now()
	claims := jwt.MapClaims{"iat": now.Unix(), "exp": now.Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("guard-test-secret"))
	require.NoError(t, err)

	rec := performRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsUnknownUser(t *testing.T) {
	engine := newGuardedEngine(guardTestConfig(), &stubResolver{err: errors.New("user not found")})

	now := time.Now()
	token := signGuardToken(t, "guard-test-secret", uuid.NewString(), now, now.Add(time.Hour))
	rec := performRequest(engine, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardAttachesIdentity(t *testing.T) {
	userID := uuid.New()
	resolver := &stubResolver{user: &users.User{
		ID:    userID,
		Name:  "Guard User",
		Email: "guard@example.com",
	}}
	engine := newGuardedEngine(guardTestConfig(), resolver)

	now := time.Now()
	token := signGuardToken(t, "guard-test-secret", userID.String(), now, now.Add(time.Hour))
	rec := performRequest(engine, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), "guard@example.com")
}
