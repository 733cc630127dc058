package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/infrastructure/security"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	t.Run("never returns the plaintext", func(t *testing.T) {
		hash, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", hash)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
	})

	t.Run("same password produces different hashes", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects passwords bcrypt cannot represent", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("x", 73))
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hash, err := security.NewBcryptHasher(0).Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, security.DefaultCost, cost)
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	t.Run("round trip", func(t *testing.T) {
		for _, p := range []string{"a", "correct horse battery staple", "pässwörd", " spaced "} {
			hash, err := hasher.Hash(p)
			require.NoError(t, err)

			ok, err := hasher.Verify(p, hash)
			require.NoError(t, err)
			assert.True(t, ok, "password %q should verify", p)
		}
	})

	t.Run("different password fails", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		for _, p := range []string{"wrongpassword", "Correctpassword", "correctpassword ", ""} {
			ok, err := hasher.Verify(p, hash)
			require.NoError(t, err)
			assert.False(t, ok, "password %q should not verify", p)
		}
	})

	t.Run("malformed hash returns error", func(t *testing.T) {
		_, err := hasher.Verify("password", "not-a-valid-hash")
		assert.Error(t, err)
	})
}
