package auth

import (
	"context"
	"testing"
	"time"

	"ledgerly/internal/shared/config"
	"ledgerly/internal/users"
	"ledgerly/pkg/hash"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&users.User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			ExpiresIn:     time.Hour,
		},
	}
}

func newTestService(t *testing.T) (Service, Repository) {
	t.Helper()

	repo := NewRepository(initTestDB(t))
	return NewService(repo, hash.NewBcryptHasher(), testConfig()), repo
}

func TestRegister(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)
	ctx := context.Background()

	body, err := service.Register(ctx, &RegisterRequest{
		Name:     "Test User",
		Email:    "Test@Example.COM",
		Password: "password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, body.Token)
	assert.Equal(t, "3600", body.Expires)
	assert.Equal(t, "1 hour,", body.ExpiresPrettyPrint)

	// Email is stored lowercased and the password is never stored plain
	user, err := repo.GetUserByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEqual(t, "password", user.Password)
	assert.NotEqual(t, user.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{
		Name:     "First",
		Email:    "taken@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, &RegisterRequest{
		Name:     "Second",
		Email:    "TAKEN@example.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestCreateUserMapsDuplicateKey(t *testing.T) {
	t.Parallel()

	repo := NewRepository(initTestDB(t))
	ctx := context.Background()

	first := &users.User{Name: "First", Email: "race@example.com", Password: "digest"}
	require.NoError(t, repo.CreateUser(ctx, first))

	// A second insert for the same email models two registrations racing
	// past the existence pre-check; the unique index must still surface
	// the domain error, not a raw driver error
	second := &users.User{Name: "Second", Email: "race@example.com", Password: "digest"}
	assert.ErrorIs(t, repo.CreateUser(ctx, second), ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{
		Name:     "Login User",
		Email:    "login@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	body, err := service.Login(ctx, &LoginRequest{
		Email:    "Login@Example.com",
		Password: "password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, body.Token)

	claims, err := service.VerifyAccessToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "Login User", claims.Name)
	assert.Equal(t, "login@example.com", claims.Email)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterRequest{
		Name:     "Known User",
		Email:    "known@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable
	_, err = service.Login(ctx, &LoginRequest{Email: "known@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, err = service.Login(ctx, &LoginRequest{Email: "unknown@example.com", Password: "password"})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestVerifyAccessToken(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)

	userID := mustNewUser(t, service, "claims@example.com", "Claims User")

	body, err := service.Login(context.Background(), &LoginRequest{
		Email:    "claims@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	claims, err := service.VerifyAccessToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "ledgerly", claims.Issuer)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerifyAccessTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)

	token := signedToken(t, "some-other-secret", time.Hour)
	_, err := service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)

	token := signedToken(t, "test-access-secret", -time.Minute)
	_, err := service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)
	ctx := context.Background()

	mustNewUser(t, service, "refresh@example.com", "Refresh User")
	user, err := repo.GetUserByEmail(ctx, "refresh@example.com")
	require.NoError(t, err)

	body, err := service.IssueRefreshToken(user, "user")
	require.NoError(t, err)
	require.NotEmpty(t, body.Token)

	// Verification succeeds without minting a replacement
	assert.NoError(t, service.Refresh(body.Token))
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	t.Parallel()

	service, repo := newTestService(t)
	ctx := context.Background()

	mustNewUser(t, service, "family@example.com", "Family User")
	user, err := repo.GetUserByEmail(ctx, "family@example.com")
	require.NoError(t, err)

	// An access token is signed with the wrong secret for the refresh path
	body, err := service.IssueToken(user)
	require.NoError(t, err)

	assert.ErrorIs(t, service.Refresh(body.Token), ErrInvalidToken)
}

func TestRefreshRejectsExpired(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)

	token := signedToken(t, "test-refresh-secret", -time.Minute)
	assert.ErrorIs(t, service.Refresh(token), ErrTokenExpired)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)

	assert.ErrorIs(t, service.Refresh("not-a-jwt"), ErrInvalidToken)
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)
	ctx := context.Background()

	id := mustNewUser(t, service, "current@example.com", "Current User")

	projection, err := service.CurrentUser(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, "Current User", projection.Name)
	assert.Equal(t, "current@example.com", projection.Email)

	// A live token for a deleted account resolves to not found
	_, err = service.CurrentUser(ctx, "4f2d1f6e-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	service, _ := newTestService(t)

	assert.NoError(t, service.Logout(context.Background(), "any-user-id"))
}

func TestPrettyPrintSeconds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		seconds int
		want    string
	}{
		{"zero", 0, ""},
		{"one second", 1, "1 second"},
		{"seconds only", 59, "59 seconds"},
		{"one minute", 60, "1 minute"},
		{"minute and second", 61, "1 minute 1 second"},
		{"minutes and seconds", 150, "2 minutes 30 seconds"},
		{"one hour", 3600, "1 hour,"},
		{"hour and second", 3601, "1 hour, 1 second"},
		{"hour minute second", 3661, "1 hour, 1 minute 1 second"},
		{"plural everything", 7322, "2 hours, 2 minutes 2 seconds"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, prettyPrintSeconds(tc.seconds))
		})
	}
}

// mustNewUser registers a user with password "password" and returns its id.
func mustNewUser(t *testing.T, service Service, email, name string) uuid.UUID {
	t.Helper()

	body, err := service.Register(context.Background(), &RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password",
	})
	require.NoError(t, err)

	claims, err := service.VerifyAccessToken(body.Token)
	require.NoError(t, err)

	parsed, err := uuid.Parse(claims.UserID)
	require.NoError(t, err)
	return parsed
}

func signedToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := AccessClaims{
		UserID: "d2b7cb6e-04be-4a42-93b4-9e11baaa1f1e",
		Name:   "Signed User",
		Email:  "signed@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "ledgerly",
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
