package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or signed with the wrong key.
	ErrInvalidToken = errors.New("invalid token")
)

// AccessClaims holds JWT claims for the access token. Subject is the user id.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RefreshClaims holds JWT claims for the refresh token. Only the subject (user id) is carried.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// AccessIdentity is the verified content of an access token.
type AccessIdentity struct {
	UserID string
	Email  string
	Role   string
}

// TokenProvider issues and validates HS256 JWT access and refresh tokens.
// Access and refresh tokens use separate secrets so one can never be presented as the other.
type TokenProvider struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenProvider returns a TokenProvider signing with the given secrets.
// issuer and audience are set on claims and validated on every parse.
func NewTokenProvider(accessSecret, refreshSecret, issuer, audience string, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		audience:      audience,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock returns a copy of p that reads time from now. For tests.
func (p *TokenProvider) WithClock(now func() time.Time) *TokenProvider {
	cp := *p
	cp.now = now
	return &cp
}

// IssueAccess issues a short-lived access JWT embedding the user's email and role.
// Returns the token string and its expiration time.
func (p *TokenProvider) IssueAccess(userID, email, role string) (token string, expiresAt time.Time, err error) {
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := p.now().UTC()
	expiresAt = now.Add(p.accessTTL)
	claims := AccessClaims{
		RegisteredClaims: p.registered(jti, userID, now, expiresAt),
		Email:            email,
		Role:             role,
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.accessSecret)
	return token, expiresAt, err
}

// IssueRefresh issues a long-lived refresh JWT. The random jti makes every refresh token unique,
// so two logins in the same second still produce distinct session hashes.
func (p *TokenProvider) IssueRefresh(userID string) (token string, expiresAt time.Time, err error) {
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := p.now().UTC()
	expiresAt = now.Add(p.refreshTTL)
	claims := RefreshClaims{RegisteredClaims: p.registered(jti, userID, now, expiresAt)}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.refreshSecret)
	return token, expiresAt, err
}

// ValidateAccess parses and validates the access token (signature, exp, iss, aud).
// Stateless: no storage lookup is performed.
func (p *TokenProvider) ValidateAccess(tokenString string) (*AccessIdentity, error) {
	claims := &AccessClaims{}
	if err := p.parse(tokenString, claims, p.accessSecret); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &AccessIdentity{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

// ValidateRefresh parses and validates the refresh token (signature, exp, iss, aud).
// Returns the user id. Callers must still check that a session exists for the token.
func (p *TokenProvider) ValidateRefresh(tokenString string) (userID string, err error) {
	claims := &RefreshClaims{}
	if err := p.parse(tokenString, claims, p.refreshSecret); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (p *TokenProvider) registered(jti, subject string, now, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        jti,
		Subject:   subject,
		Issuer:    p.issuer,
		Audience:  jwt.ClaimStrings{p.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
}

func (p *TokenProvider) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	if tokenString == "" {
		return ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
