package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gigledger/gigledger/pkg/logger"
)

// Verifier consumes submitted OTP codes against the challenge store,
// enforcing expiry and single use.
type Verifier struct {
	store ChallengeStore
	now   func() time.Time
	log   *slog.Logger
}

// NewVerifier creates a verifier over store.
func NewVerifier(store ChallengeStore, log *slog.Logger) *Verifier {
	if log == nil {
		log = logger.Discard()
	}
	return &Verifier{store: store, now: time.Now, log: log}
}

// Verify checks the submitted code for email and consumes the challenge.
//
// A missing (email, code) match returns ErrInvalidOrExpiredOTP without
// touching the store, so the caller may retry with a different code. Whether
// the cause was a wrong code, no challenge, or an already-consumed one is not
// observable from the lookup; the single generic error is deliberate. A
// matched but expired challenge is removed and reported as ErrOTPExpired.
// On success the challenge is removed before returning, so a code can only
// be consumed once.
func (v *Verifier) Verify(ctx context.Context, email, code string) (string, error) {
	ch, err := v.store.FindActive(ctx, email, code)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			v.log.InfoContext(ctx, "otp verification failed: no matching challenge",
				logger.Email(email),
				logger.Component("otp_verifier"),
			)
			return "", ErrInvalidOrExpiredOTP
		}
		return "", fmt.Errorf("otp lookup: %w", err)
	}

	if v.now().After(ch.ExpiresAt) {
		if err := v.store.Remove(ctx, email); err != nil {
			return "", fmt.Errorf("remove expired challenge: %w", err)
		}
		v.log.InfoContext(ctx, "otp verification failed: challenge expired",
			logger.Email(email),
			slog.Time("expired_at", ch.ExpiresAt),
			logger.Component("otp_verifier"),
		)
		return "", ErrOTPExpired
	}

	if err := v.store.Remove(ctx, email); err != nil {
		return "", fmt.Errorf("consume challenge: %w", err)
	}

	return ch.Email, nil
}
