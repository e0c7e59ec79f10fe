package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	StandardClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates service with key", func(t *testing.T) {
		t.Parallel()

		svc, err := New([]byte("test-signing-key-32-bytes-long!!"))
		require.NoError(t, err)
		require.NotNil(t, svc)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		assert.ErrorIs(t, err, ErrMissingSigningKey)

		_, err = NewFromString("")
		assert.ErrorIs(t, err, ErrMissingSigningKey)
	})
}

func TestService_GenerateParse(t *testing.T) {
	t.Parallel()

	svc, err := NewFromString("test-signing-key-32-bytes-long!!")
	require.NoError(t, err)

	t.Run("round trips claims", func(t *testing.T) {
		t.Parallel()

		in := testClaims{
			StandardClaims: StandardClaims{
				Subject:   "acct-1",
				ExpiresAt: time.Now().Add(time.Hour).Unix(),
			},
			Email: "user@example.com",
			Role:  "customer",
		}

		token, err := svc.Generate(in)
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		var out testClaims
		require.NoError(t, svc.Parse(token, &out))
		assert.Equal(t, in, out)
	})

	t.Run("rejects nil claims", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Generate(nil)
		assert.ErrorIs(t, err, ErrMissingClaims)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		t.Parallel()

		var out testClaims
		assert.ErrorIs(t, svc.Parse("not-a-token", &out), ErrInvalidToken)
		assert.ErrorIs(t, svc.Parse("a.b", &out), ErrInvalidToken)
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(testClaims{Email: "user@example.com"})
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		tampered := parts[0] + "." + base64URLEncode([]byte(`{"email":"evil@example.com"}`)) + "." + parts[2]

		var out testClaims
		assert.ErrorIs(t, svc.Parse(tampered, &out), ErrInvalidSignature)
	})

	t.Run("rejects token signed with different key", func(t *testing.T) {
		t.Parallel()

		other, err := NewFromString("another-signing-key-32-bytes!!!!")
		require.NoError(t, err)

		token, err := other.Generate(testClaims{Email: "user@example.com"})
		require.NoError(t, err)

		var out testClaims
		assert.ErrorIs(t, svc.Parse(token, &out), ErrInvalidSignature)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(testClaims{
			StandardClaims: StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
		})
		require.NoError(t, err)

		var out testClaims
		assert.ErrorIs(t, svc.Parse(token, &out), ErrExpiredToken)
	})

	t.Run("rejects not-yet-valid token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.Generate(testClaims{
			StandardClaims: StandardClaims{NotBefore: time.Now().Add(time.Hour).Unix()},
		})
		require.NoError(t, err)

		var out testClaims
		assert.ErrorIs(t, svc.Parse(token, &out), ErrInvalidToken)
	})
}

func TestStandardClaims_Valid(t *testing.T) {
	t.Parallel()

	t.Run("zero temporal claims are ignored", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, StandardClaims{}.Valid())
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		c := StandardClaims{ExpiresAt: time.Now().Add(-time.Second).Unix()}
		assert.ErrorIs(t, c.Valid(), ErrExpiredToken)
	})
}
