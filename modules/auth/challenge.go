package auth

import (
	"context"
	"time"
)

// Challenge is the single live OTP challenge for an email.
type Challenge struct {
	Email     string    `bson:"email" json:"email"`
	Code      string    `bson:"code" json:"code"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
}

// ChallengeStore holds at most one live challenge per email.
//
// Upsert must be atomic per email: concurrent upserts for the same email
// resolve last-writer-wins with no intermediate state in which two codes are
// simultaneously stored. FindActive matches the (email, code) tuple exactly
// and returns ErrChallengeNotFound otherwise; expiry of a matched record is
// the verifier's call to make, since background reclamation may lag behind
// the expiry instant. Remove is idempotent.
type ChallengeStore interface {
	Upsert(ctx context.Context, email, code string, ttl time.Duration) error
	FindActive(ctx context.Context, email, code string) (*Challenge, error)
	Remove(ctx context.Context, email string) error
}
