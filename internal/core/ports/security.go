package ports

import "github.com/99minutos/auth-api/internal/core/domain"

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (false, nil) on mismatch and an error only for a malformed hash.
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs access tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// TokenVerifier validates access tokens and returns the embedded identity.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}
