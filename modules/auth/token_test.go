package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningSecret = "test-signing-secret-32-bytes-ok!"

func TestTokenIssuer(t *testing.T) {
	t.Parallel()

	acct := Account{
		ID:    "64f0c1e2a5b3d4e5f6a7b8c9",
		Email: "a@x.com",
		Name:  "Ada",
		Role:  RoleCustomer,
	}

	t.Run("issued token verifies to matching claims", func(t *testing.T) {
		t.Parallel()

		issuer, err := NewTokenIssuer(testSigningSecret, 0, nil)
		require.NoError(t, err)

		token, err := issuer.Issue(acct)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, acct.ID, claims.ID)
		assert.Equal(t, acct.Email, claims.Email)
		assert.Equal(t, acct.Name, claims.Name)
		assert.Equal(t, acct.Role, claims.Role)
		assert.Equal(t, acct.ID, claims.Subject)
		assert.Equal(t, DefaultTokenTTL, time.Unix(claims.ExpiresAt, 0).Sub(time.Unix(claims.IssuedAt, 0)))
	})

	t.Run("token aged past its window fails verification", func(t *testing.T) {
		t.Parallel()

		issuer, err := NewTokenIssuer(testSigningSecret, 0, nil)
		require.NoError(t, err)

		// Issue as if 25 hours ago.
		issuer.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
		token, err := issuer.Issue(acct)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("tampered token fails verification", func(t *testing.T) {
		t.Parallel()

		issuer, err := NewTokenIssuer(testSigningSecret, 0, nil)
		require.NoError(t, err)

		token, err := issuer.Issue(acct)
		require.NoError(t, err)

		_, err = issuer.Verify(token + "x")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token from another secret fails verification", func(t *testing.T) {
		t.Parallel()

		issuer, err := NewTokenIssuer(testSigningSecret, 0, nil)
		require.NoError(t, err)
		other, err := NewTokenIssuer("a-completely-different-secret!!!", 0, nil)
		require.NoError(t, err)

		token, err := other.Issue(acct)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewTokenIssuer("", 0, nil)
		assert.Error(t, err)
	})
}
