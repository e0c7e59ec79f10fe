package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("consumes valid challenge exactly once", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryChallengeStore()
		require.NoError(t, store.Upsert(ctx, "a@x.com", "482913", 10*time.Minute))

		v := NewVerifier(store, nil)

		email, err := v.Verify(ctx, "a@x.com", "482913")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", email)

		// Single use: the same code immediately fails.
		_, err = v.Verify(ctx, "a@x.com", "482913")
		assert.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
	})

	t.Run("no challenge returns generic failure", func(t *testing.T) {
		t.Parallel()

		v := NewVerifier(NewMemoryChallengeStore(), nil)

		_, err := v.Verify(ctx, "a@x.com", "482913")
		assert.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
	})

	t.Run("wrong code returns generic failure and leaves challenge intact", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryChallengeStore()
		require.NoError(t, store.Upsert(ctx, "a@x.com", "482913", 10*time.Minute))

		v := NewVerifier(store, nil)

		_, err := v.Verify(ctx, "a@x.com", "111111")
		assert.ErrorIs(t, err, ErrInvalidOrExpiredOTP)

		// Retry with the right code still works (not-found leaves the
		// record untouched).
		email, err := v.Verify(ctx, "a@x.com", "482913")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", email)
	})

	t.Run("expired challenge is removed and reported", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryChallengeStore()
		require.NoError(t, store.Upsert(ctx, "a@x.com", "482913", 10*time.Minute))

		v := NewVerifier(store, nil)
		v.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

		_, err := v.Verify(ctx, "a@x.com", "482913")
		assert.ErrorIs(t, err, ErrOTPExpired)

		// The record was consumed by the expiry detection.
		_, err = store.FindActive(ctx, "a@x.com", "482913")
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("store failure is not an auth error", func(t *testing.T) {
		t.Parallel()

		store := &MockChallengeStore{}
		storeErr := errors.New("connection reset")
		store.On("FindActive", mock.Anything, "a@x.com", "482913").Return(nil, storeErr)

		v := NewVerifier(store, nil)

		_, err := v.Verify(ctx, "a@x.com", "482913")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidOrExpiredOTP)
		assert.ErrorIs(t, err, storeErr)
	})
}
