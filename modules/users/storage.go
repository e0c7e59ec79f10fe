package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is the mongo collection holding freelancer profiles.
const Collection = "users"

// sortFields maps API sort keys to document field names. Unknown keys fall
// back to creation time.
var sortFields = map[string]string{
	"name":           "name",
	"hourlyRate":     "hourly_rate",
	"earningsUSD":    "earnings_usd",
	"clientRating":   "client_rating",
	"jobSuccessRate": "job_success_rate",
	"jobsCompleted":  "jobs_completed",
	"createdAt":      "created_at",
}

// ListParams narrows and orders a profile listing. Page is 1-based.
type ListParams struct {
	Search          string
	ExperienceLevel string
	Region          string
	Platform        string
	MinRate         *float64
	MaxRate         *float64
	SortBy          string
	SortDesc        bool
	Page            int
	PerPage         int
}

// MongoStorage persists profiles in mongo.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection(Collection)}
}

// EnsureIndexes creates the unique email and freelancer id indexes.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "freelancer_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (s *MongoStorage) Create(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	u.ID = bson.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return errors.Join(ErrFailedToCreateUser, err)
	}
	return nil
}

func (s *MongoStorage) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var u User
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *MongoStorage) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns a page of profiles matching params plus the total match count.
func (s *MongoStorage) List(ctx context.Context, params ListParams) ([]User, int64, error) {
	filter := buildFilter(params)

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Join(ErrFailedToListUsers, err)
	}

	field, ok := sortFields[params.SortBy]
	if !ok {
		field = "created_at"
		params.SortDesc = true
	}
	order := 1
	if params.SortDesc {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: order}}).
		SetSkip(int64((params.Page - 1) * params.PerPage)).
		SetLimit(int64(params.PerPage))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Join(ErrFailedToListUsers, err)
	}

	users := make([]User, 0, params.PerPage)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, errors.Join(ErrFailedToListUsers, err)
	}
	return users, total, nil
}

func buildFilter(params ListParams) bson.M {
	filter := bson.M{}

	if params.Search != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(params.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"skills": re},
			bson.M{"region": re},
			bson.M{"platform": re},
		}
	}
	if params.ExperienceLevel != "" {
		filter["experience_level"] = params.ExperienceLevel
	}
	if params.Region != "" {
		filter["region"] = params.Region
	}
	if params.Platform != "" {
		filter["platform"] = params.Platform
	}
	if params.MinRate != nil || params.MaxRate != nil {
		rate := bson.M{}
		if params.MinRate != nil {
			rate["$gte"] = *params.MinRate
		}
		if params.MaxRate != nil {
			rate["$lte"] = *params.MaxRate
		}
		filter["hourly_rate"] = rate
	}
	return filter
}

// Update applies the given field changes and returns the updated document.
func (s *MongoStorage) Update(ctx context.Context, id string, updates bson.M) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	updates["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u User
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": updates}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, errors.Join(ErrFailedToUpdateUser, err)
	}
	return &u, nil
}

func (s *MongoStorage) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Join(ErrFailedToDeleteUser, err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
