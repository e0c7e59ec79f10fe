package listings

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/gigledger/gigledger/core"
	"github.com/gigledger/gigledger/pkg/logger"
)

// Storage is the persistence contract the service operates on.
type Storage interface {
	Create(ctx context.Context, l *Listing) error
	CreateMany(ctx context.Context, ls []Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, params ListParams) ([]Listing, int64, error)
	Update(ctx context.Context, id string, updates bson.M) (*Listing, error)
	Delete(ctx context.Context, id string) error
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// CreateParams carries a validated gig record payload.
type CreateParams struct {
	FreelancerID    string
	JobCategory     string
	Platform        string
	ExperienceLevel string
	ClientRegion    string
	PaymentMethod   string
	JobsCompleted   int
	EarningsUSD     float64
	HourlyRate      float64
	JobSuccessRate  float64
	ClientRating    float64
	JobDurationDays float64
	ProjectType     string
	RehireRate      float64
	MarketingSpend  float64
}

// UpdateParams holds optional record changes. Nil fields are left untouched.
type UpdateParams struct {
	JobCategory     *string
	Platform        *string
	ExperienceLevel *string
	ClientRegion    *string
	PaymentMethod   *string
	JobsCompleted   *int
	EarningsUSD     *float64
	HourlyRate      *float64
	JobSuccessRate  *float64
	ClientRating    *float64
	JobDurationDays *float64
	ProjectType     *string
	RehireRate      *float64
	MarketingSpend  *float64
}

// Service implements gig record management.
type Service struct {
	storage Storage
	log     *slog.Logger
}

func NewService(storage Storage, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{storage: storage, log: log}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Listing, error) {
	l := &Listing{
		FreelancerID:    params.FreelancerID,
		JobCategory:     params.JobCategory,
		Platform:        params.Platform,
		ExperienceLevel: params.ExperienceLevel,
		ClientRegion:    params.ClientRegion,
		PaymentMethod:   params.PaymentMethod,
		JobsCompleted:   params.JobsCompleted,
		EarningsUSD:     params.EarningsUSD,
		HourlyRate:      params.HourlyRate,
		JobSuccessRate:  params.JobSuccessRate,
		ClientRating:    params.ClientRating,
		JobDurationDays: params.JobDurationDays,
		ProjectType:     params.ProjectType,
		RehireRate:      params.RehireRate,
		MarketingSpend:  params.MarketingSpend,
	}
	if err := s.storage.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Import bulk-loads dataset records.
func (s *Service) Import(ctx context.Context, ls []Listing) error {
	if err := s.storage.CreateMany(ctx, ls); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "listings imported", slog.Int("count", len(ls)))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Listing, error) {
	return s.storage.GetByID(ctx, id)
}

// List returns a page of records together with pagination meta.
func (s *Service) List(ctx context.Context, params ListParams) ([]Listing, core.Pagination, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = DefaultPerPage
	}
	if params.PerPage > MaxPerPage {
		params.PerPage = MaxPerPage
	}

	ls, total, err := s.storage.List(ctx, params)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return ls, core.NewPagination(total, params.Page, params.PerPage), nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Listing, error) {
	updates := bson.M{}
	setIfPresent(updates, "job_category", params.JobCategory)
	setIfPresent(updates, "platform", params.Platform)
	setIfPresent(updates, "experience_level", params.ExperienceLevel)
	setIfPresent(updates, "client_region", params.ClientRegion)
	setIfPresent(updates, "payment_method", params.PaymentMethod)
	setIfPresent(updates, "jobs_completed", params.JobsCompleted)
	setIfPresent(updates, "earnings_usd", params.EarningsUSD)
	setIfPresent(updates, "hourly_rate", params.HourlyRate)
	setIfPresent(updates, "job_success_rate", params.JobSuccessRate)
	setIfPresent(updates, "client_rating", params.ClientRating)
	setIfPresent(updates, "job_duration_days", params.JobDurationDays)
	setIfPresent(updates, "project_type", params.ProjectType)
	setIfPresent(updates, "rehire_rate", params.RehireRate)
	setIfPresent(updates, "marketing_spend", params.MarketingSpend)

	if len(updates) == 0 {
		return s.storage.GetByID(ctx, id)
	}
	return s.storage.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}

func setIfPresent[T any](updates bson.M, key string, v *T) {
	if v != nil {
		updates[key] = *v
	}
}
