package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ChallengeCollection is the mongo collection holding OTP challenges.
const ChallengeCollection = "otp_challenges"

// MongoChallengeStore persists challenges in a mongo collection keyed by
// email. A TTL index on expires_at reclaims abandoned records; the index is
// storage hygiene, not the expiry check, which happens at verification time.
type MongoChallengeStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoChallengeStore creates the store over db's challenge collection.
func NewMongoChallengeStore(db *mongo.Database) *MongoChallengeStore {
	return &MongoChallengeStore{
		coll: db.Collection(ChallengeCollection),
		now:  time.Now,
	}
}

// EnsureIndexes creates the unique email index and the TTL reclamation index.
// Called once at startup.
func (s *MongoChallengeStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return fmt.Errorf("create challenge indexes: %w", err)
	}
	return nil
}

// Upsert atomically creates-or-replaces the challenge for email. ReplaceOne
// with upsert on the unique email key gives last-writer-wins semantics for
// concurrent logins on the same email.
func (s *MongoChallengeStore) Upsert(ctx context.Context, email, code string, ttl time.Duration) error {
	now := s.now().UTC()
	ch := Challenge{
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "email", Value: email}},
		ch,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert challenge: %w", err)
	}
	return nil
}

// FindActive returns the challenge matching both email and code exactly, or
// ErrChallengeNotFound.
func (s *MongoChallengeStore) FindActive(ctx context.Context, email, code string) (*Challenge, error) {
	var ch Challenge
	err := s.coll.FindOne(ctx, bson.D{
		{Key: "email", Value: email},
		{Key: "code", Value: code},
	}).Decode(&ch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("find challenge: %w", err)
	}
	return &ch, nil
}

// Remove deletes the challenge for email, idempotent if absent.
func (s *MongoChallengeStore) Remove(ctx context.Context, email string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "email", Value: email}}); err != nil {
		return fmt.Errorf("remove challenge: %w", err)
	}
	return nil
}
