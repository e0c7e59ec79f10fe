package listings

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

// Collection is the mongo collection holding gig records.
const Collection = "listings"

var sortFields = map[string]string{
	"earningsUSD":     "earnings_usd",
	"hourlyRate":      "hourly_rate",
	"clientRating":    "client_rating",
	"jobSuccessRate":  "job_success_rate",
	"jobsCompleted":   "jobs_completed",
	"jobDurationDays": "job_duration_days",
	"createdAt":       "created_at",
}

// ListParams narrows and orders a gig record listing. Page is 1-based.
type ListParams struct {
	Search          string
	Platform        string
	ExperienceLevel string
	ClientRegion    string
	ProjectType     string
	MinEarnings     *float64
	MaxEarnings     *float64
	SortBy          string
	SortDesc        bool
	Page            int
	PerPage         int
}

// MongoStorage persists gig records in mongo.
type MongoStorage struct {
	coll *mongo.Collection
}

func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection(Collection)}
}

// EnsureIndexes creates the indexes the listing filters lean on.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "platform", Value: 1}}},
		{Keys: bson.D{{Key: "job_category", Value: 1}}},
		{Keys: bson.D{{Key: "earnings_usd", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create listing indexes: %w", err)
	}
	return nil
}

func (s *MongoStorage) Create(ctx context.Context, l *Listing) error {
	now := time.Now().UTC()
	l.ID = bson.NewObjectID()
	l.CreatedAt = now
	l.UpdatedAt = now

	if _, err := s.coll.InsertOne(ctx, l); err != nil {
		return errors.Join(ErrFailedToCreateListing, err)
	}
	return nil
}

// CreateMany bulk-inserts records, used by the dataset importer.
func (s *MongoStorage) CreateMany(ctx context.Context, ls []Listing) error {
	if len(ls) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]any, len(ls))
	for i := range ls {
		ls[i].ID = bson.NewObjectID()
		ls[i].CreatedAt = now
		ls[i].UpdatedAt = now
		docs[i] = ls[i]
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return errors.Join(ErrFailedToCreateListing, err)
	}
	return nil
}

// RemoveAll drops every record, used by the importer before a fresh load.
func (s *MongoStorage) RemoveAll(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Join(ErrFailedToDeleteListing, err)
	}
	return nil
}

func (s *MongoStorage) GetByID(ctx context.Context, id string) (*Listing, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var l Listing
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns a page of records matching params plus the total match count.
func (s *MongoStorage) List(ctx context.Context, params ListParams) ([]Listing, int64, error) {
	filter := buildFilter(params)

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Join(ErrFailedToListListings, err)
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
		return nil, 0, errors.Join(ErrFailedToListListings, err)
	}

	ls := make([]Listing, 0, params.PerPage)
	if err := cursor.All(ctx, &ls); err != nil {
		return nil, 0, errors.Join(ErrFailedToListListings, err)
	}
	return ls, total, nil
}

func buildFilter(params ListParams) bson.M {
	filter := bson.M{}

	if params.Search != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(params.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"job_category": re},
			bson.M{"platform": re},
			bson.M{"client_region": re},
			bson.M{"project_type": re},
		}
	}
	if params.Platform != "" {
		filter["platform"] = params.Platform
	}
	if params.ExperienceLevel != "" {
		filter["experience_level"] = params.ExperienceLevel
	}
	if params.ClientRegion != "" {
		filter["client_region"] = params.ClientRegion
	}
	if params.ProjectType != "" {
		filter["project_type"] = params.ProjectType
	}
	if params.MinEarnings != nil || params.MaxEarnings != nil {
		earnings := bson.M{}
		if params.MinEarnings != nil {
			earnings["$gte"] = *params.MinEarnings
		}
		if params.MaxEarnings != nil {
			earnings["$lte"] = *params.MaxEarnings
		}
		filter["earnings_usd"] = earnings
	}
	return filter
}

// Update applies the given field changes and returns the updated document.
func (s *MongoStorage) Update(ctx context.Context, id string, updates bson.M) (*Listing, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	updates["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var l Listing
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": updates}, opts).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		return nil, errors.Join(ErrFailedToUpdateListing, err)
	}
	return &l, nil
}

func (s *MongoStorage) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Join(ErrFailedToDeleteListing, err)
	}
	if res.DeletedCount == 0 {
		return ErrListingNotFound
	}
	return nil
}
