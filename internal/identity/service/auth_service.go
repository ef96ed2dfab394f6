// Package service implements registration and the session/token lifecycle.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VictorSaf/ainvestfeed/internal/platform/apperr"
	"github.com/VictorSaf/ainvestfeed/internal/security"
	sessiondomain "github.com/VictorSaf/ainvestfeed/internal/session/domain"
	userdomain "github.com/VictorSaf/ainvestfeed/internal/user/domain"
)

// Sentinel errors for the auth service; the HTTP error handler renders them directly.
var (
	ErrEmailInUse         = apperr.Duplicate("Email already in use")
	ErrInvalidCredentials = apperr.Authentication("Invalid credentials")
	ErrInvalidToken       = apperr.Authentication("Invalid token")
	ErrInvalidSession     = apperr.Authentication("Invalid session")
)

// LoginResult holds the authenticated user and the freshly issued token pair.
type LoginResult struct {
	User         *userdomain.User
	AccessToken  string
	RefreshToken string
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	Create(ctx context.Context, s *sessiondomain.Session) error
	GetByRefreshHash(ctx context.Context, refreshHash string) (*sessiondomain.Session, error)
	UpdateLastUsed(ctx context.Context, id string, at time.Time) error
	DeleteByRefreshHash(ctx context.Context, refreshHash string) (int64, error)
}

// AuthService implements register, login, refresh, and logout.
type AuthService struct {
	userRepo    UserRepo
	sessionRepo SessionRepo
	hasher      *security.Hasher
	tokens      *security.TokenProvider
	sessionTTL  time.Duration
	now         func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(
	userRepo UserRepo,
	sessionRepo SessionRepo,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock returns a copy of s that reads time from now for session timestamps and expiry checks.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	c := *s
	c.now = now
	return &c
}

// Register creates an active user with role "user". Input shape is validated by the handler;
// the email is normalized to lower case here.
func (s *AuthService) Register(ctx context.Context, email, password string, firstName, lastName *string) (*userdomain.User, error) {
	email = normalizeEmail(email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		Role:         userdomain.RoleUser,
		IsActive:     true,
		FirstName:    trimmedOrNil(firstName),
		LastName:     trimmedOrNil(lastName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, apperr.Validation(err.Error(), nil)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, userdomain.ErrEmailTaken) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials, persists a session holding both token hashes, and returns the tokens.
// Unknown email, wrong password, and inactive account all return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, _, err := s.tokens.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess := &sessiondomain.Session{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		TokenHash:        security.HashToken(accessToken),
		RefreshTokenHash: security.HashToken(refreshToken),
		ExpiresAt:        now.Add(s.sessionTTL),
		CreatedAt:        now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh mints a new access token for a live session. The refresh token and session row are not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrInvalidToken
	}
	userID, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}
	sess, err := s.sessionRepo.GetByRefreshHash(ctx, security.HashToken(refreshToken))
	if err != nil {
		return "", err
	}
	now := s.now()
	if sess == nil || !security.TokenHashEqual(refreshToken, sess.RefreshTokenHash) {
		return "", ErrInvalidSession
	}
	if sess.UserID != userID || sess.Expired(now) {
		return "", ErrInvalidSession
	}
	// Best-effort; a failed touch must not block the refresh.
	_ = s.sessionRepo.UpdateLastUsed(ctx, sess.ID, now)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil || !user.IsActive {
		return "", ErrInvalidSession
	}
	accessToken, _, err := s.tokens.IssueAccess(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", err
	}
	return accessToken, nil
}

// Logout deletes the session bound to refreshToken. Unknown or already-deleted tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	_, err := s.sessionRepo.DeleteByRefreshHash(ctx, security.HashToken(refreshToken))
	return err
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
