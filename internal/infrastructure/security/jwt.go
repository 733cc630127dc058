package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/99minutos/auth-api/internal/core/domain"
)

// DefaultTokenTTL is how long an issued access token stays valid.
const DefaultTokenTTL = 2 * time.Hour

// tokenClaims is the JWT payload: user_id and email next to the registered
// iat, exp and jti claims.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ErrEmptySecret is returned by NewJWTManager when no signing key is given.
var ErrEmptySecret = errors.New("security: token signing secret is empty")

// JWTManager issues and verifies HS256 access tokens with a shared secret.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager builds a manager. An empty secret is rejected; a non-positive
// ttl falls back to DefaultTokenTTL and a nil clock to time.Now.
func NewJWTManager(secret string, ttl time.Duration, now func() time.Time) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: now}, nil
}

// Issue signs a token for the given identity. The issue time is truncated to
// whole seconds so that exp is exactly iat+ttl on the wire.
func (m *JWTManager) Issue(userID, email string) (string, error) {
	issuedAt := m.now().UTC().Truncate(time.Second)
	claims := tokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_FAILED").With("user_id", userID).Wrap(err)
	}
	return signed, nil
}

// Verify rejects tokens that are malformed, signed with another key or
// algorithm, missing exp, or whose exp is at or before the current time.
// Strict base64 decoding makes every byte of the token significant.
func (m *JWTManager) Verify(token string) (*domain.Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.Claims{
		UserID:  claims.UserID,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
