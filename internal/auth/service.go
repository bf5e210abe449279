package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"ledgerly/internal/shared/config"
	"ledgerly/internal/users"
	"ledgerly/pkg/hash"
	"ledgerly/pkg/logger"
)

var (
	// ErrAuthenticationFailed covers every credential failure: unknown email
	// and wrong password collapse into the same error so callers cannot
	// probe which addresses are registered.
	ErrAuthenticationFailed = errors.New("could not authenticate, please try again")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
)

// Notifier publishes account lifecycle events (welcome mail after
// registration). Calls are best-effort: a failure is logged, never surfaced.
type Notifier interface {
	NotifyUserRegistered(ctx context.Context, userID uuid.UUID, email, name string) error
}

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*TokenReturnBody, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenReturnBody, error)
	ValidateCredentials(ctx context.Context, email, password string) (*users.User, error)
	IssueToken(user *users.User) (*TokenReturnBody, error)
	IssueRefreshToken(user *users.User, role string) (*TokenReturnBody, error)
	Refresh(refreshToken string) error
	CurrentUser(ctx context.Context, userID string) (*users.Projection, error)
	Logout(ctx context.Context, userID string) error
	VerifyAccessToken(tokenString string) (*AccessClaims, error)
	SetNotifier(n Notifier)
}

type service struct {
	repo     Repository
	hasher   hash.Hasher
	config   *config.Config
	notifier Notifier
	logger   *logger.Logger
}

func NewService(repo Repository, hasher hash.Hasher, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		config: cfg,
		logger: logger.GetDefault(),
	}
}

// SetNotifier wires the optional registration notifier. The service works
// without one; notifications are then skipped entirely.
func (s *service) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*TokenReturnBody, error) {
	email := strings.ToLower(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
	}

	// The unique index on email is the source of truth; the existence check
	// above only gives a friendlier error for the common case.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.LogUserRegistered(ctx, user.ID.String(), user.Email)

	if s.notifier != nil {
		if err := s.notifier.NotifyUserRegistered(ctx, user.ID, user.Email, user.Name); err != nil {
			s.logger.ErrorWithContext(ctx, "failed to publish registration notification", err,
				map[string]interface{}{"user_id": user.ID.String()})
		}
	}

	return s.IssueToken(user)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*TokenReturnBody, error) {
	user, err := s.ValidateCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	s.logger.LogAuthSuccess(ctx, user.ID.String(), "password")
	return s.IssueToken(user)
}

// ValidateCredentials resolves an email/password pair to the stored user
// record. The response is constant for any failure mode.
func (s *service) ValidateCredentials(ctx context.Context, email, password string) (*users.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.hasher.Compare(user.Password, password) {
		return nil, ErrAuthenticationFailed
	}

	return user, nil
}

// IssueToken signs an access token for the given user and wraps it in the
// standard return body.
func (s *service) IssueToken(user *users.User) (*TokenReturnBody, error) {
	now := time.Now()
	ttl := s.config.JWT.ExpiresIn

	claims := AccessClaims{
		UserID: user.ID.String(),
		Name:   user.Name,
		Email:  strings.ToLower(user.Email),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "ledgerly",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return s.tokenReturnBody(signed, ttl), nil
}

// IssueRefreshToken signs a refresh-family token. The claim shape differs
// from the access family on purpose and the refresh secret signs it.
func (s *service) IssueRefreshToken(user *users.User, role string) (*TokenReturnBody, error) {
	now := time.Now()
	ttl := s.config.JWT.ExpiresIn

	claims := RefreshClaims{
		UserID:   user.ID.String(),
		Username: user.Name,
		Email:    strings.ToLower(user.Email),
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "ledgerly",
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWT.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return s.tokenReturnBody(signed, ttl), nil
}

func (s *service) tokenReturnBody(token string, ttl time.Duration) *TokenReturnBody {
	seconds := int64(ttl.Seconds())
	return &TokenReturnBody{
		Token:              token,
		Expires:            strconv.FormatInt(seconds, 10),
		ExpiresPrettyPrint: prettyPrintSeconds(int(seconds)),
	}
}

// Refresh verifies a refresh token against the refresh secret. On success it
// returns nil without minting anything: issuing a replacement token is a
// separate call the caller makes explicitly.
func (s *service) Refresh(refreshToken string) error {
	claims, err := s.parseRefreshClaims(refreshToken)
	if err != nil {
		return err
	}

	// The parser already rejects expired tokens; this mirrors that check
	// against the decoded claim so a missing exp also fails closed.
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}

	return nil
}

func (s *service) parseRefreshClaims(tokenString string) (*RefreshClaims, error) {
	var claims RefreshClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.RefreshSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// VerifyAccessToken decodes and verifies an access token with the primary
// secret. Pure function of (token, now, secret); it never touches the store.
func (s *service) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	var claims AccessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// CurrentUser resolves verified claims to the stored record, password
// stripped. A deleted user with a live token gets ErrUserNotFound.
func (s *service) CurrentUser(ctx context.Context, userID string) (*users.Projection, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	projection := user.Project()
	return &projection, nil
}

// Logout is a documented no-op: there is no server-side session state and no
// revocation list, so an issued token stays valid until its expiry claim
// passes. The operation exists for API symmetry and always succeeds.
func (s *service) Logout(ctx context.Context, userID string) error {
	s.logger.InfoWithContext(ctx, "user logged out", map[string]interface{}{"user_id": userID})
	return nil
}

// prettyPrintSeconds formats a second count as e.g. "1 hour, 1 minute 1 second".
// Zero-valued units are omitted and each label is singular at exactly 1.
func prettyPrintSeconds(total int) string {
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := (total % 3600) % 60

	var clauses []string
	if hours > 0 {
		if hours == 1 {
			clauses = append(clauses, "1 hour,")
		} else {
			clauses = append(clauses, fmt.Sprintf("%d hours,", hours))
		}
	}
	if minutes > 0 {
		if minutes == 1 {
			clauses = append(clauses, "1 minute")
		} else {
			clauses = append(clauses, fmt.Sprintf("%d minutes", minutes))
		}
	}
	if seconds > 0 {
		if seconds == 1 {
			clauses = append(clauses, "1 second")
		} else {
			clauses = append(clauses, fmt.Sprintf("%d seconds", seconds))
		}
	}

	return strings.Join(clauses, " ")
}
