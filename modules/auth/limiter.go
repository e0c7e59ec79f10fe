package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gigledger/gigledger/pkg/logger"
)

const attemptKeyPrefix = "otp_attempts:"

// AttemptLimiter caps failed OTP verifications per email within a cooldown
// window, backed by a redis counter. The limiter is hardening, not
// correctness: every operation fails open when redis is unreachable so an
// outage cannot lock users out of login.
type AttemptLimiter struct {
	redis    redis.UniversalClient
	max      int
	cooldown time.Duration
	log      *slog.Logger
}

// NewAttemptLimiter creates a limiter allowing max failures per cooldown window.
func NewAttemptLimiter(client redis.UniversalClient, max int, cooldown time.Duration, log *slog.Logger) *AttemptLimiter {
	if max <= 0 {
		max = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	if log == nil {
		log = logger.Discard()
	}
	return &AttemptLimiter{redis: client, max: max, cooldown: cooldown, log: log}
}

// Check returns ErrTooManyAttempts if email has exhausted its attempts.
func (l *AttemptLimiter) Check(ctx context.Context, email string) error {
	count, err := l.redis.Get(ctx, attemptKeyPrefix+email).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		l.log.WarnContext(ctx, "attempt limiter unavailable, failing open",
			logger.Error(err),
			logger.Component("attempt_limiter"),
		)
		return nil
	}
	if count >= int64(l.max) {
		return ErrTooManyAttempts
	}
	return nil
}

// RecordFailure increments the failure counter, starting the cooldown window
// on the first failure.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, email string) {
	key := attemptKeyPrefix + email
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		l.log.WarnContext(ctx, "attempt limiter unavailable, failure not recorded",
			logger.Error(err),
			logger.Component("attempt_limiter"),
		)
		return
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.cooldown).Err(); err != nil {
			l.log.WarnContext(ctx, "attempt limiter expire failed",
				logger.Error(err),
				logger.Component("attempt_limiter"),
			)
		}
	}
}

// Reset clears the failure counter after a successful verification.
func (l *AttemptLimiter) Reset(ctx context.Context, email string) {
	if err := l.redis.Del(ctx, attemptKeyPrefix+email).Err(); err != nil {
		l.log.WarnContext(ctx, "attempt limiter reset failed",
			logger.Error(err),
			logger.Component("attempt_limiter"),
		)
	}
}
