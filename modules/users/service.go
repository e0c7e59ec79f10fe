package users

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/gigledger/gigledger/core"
	"github.com/gigledger/gigledger/modules/auth"
	"github.com/gigledger/gigledger/pkg/logger"
	"github.com/gigledger/gigledger/pkg/sanitizer"
)

// Storage is the persistence contract the service operates on.
type Storage interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, params ListParams) ([]User, int64, error)
	Update(ctx context.Context, id string, updates bson.M) (*User, error)
	Delete(ctx context.Context, id string) error
}

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// CreateParams carries a validated registration payload. Password arrives in
// plain text and is hashed here before it reaches storage.
type CreateParams struct {
	FreelancerID    string
	Name            string
	Email           string
	Password        string
	Role            string
	ExperienceLevel string
	HourlyRate      float64
	Skills          []string
	Region          string
	Platform        string
	PaymentMethod   string
}

// UpdateParams holds optional profile changes. Nil fields are left untouched.
type UpdateParams struct {
	Name            *string
	ExperienceLevel *string
	HourlyRate      *float64
	JobSuccessRate  *float64
	Skills          *[]string
	Region          *string
	Platform        *string
	EarningsUSD     *float64
	ClientRating    *float64
	JobsCompleted   *int
	ProjectType     *string
	RehireRate      *float64
	MarketingSpend  *float64
	PaymentMethod   *string
}

// Service implements freelancer profile management.
type Service struct {
	storage Storage
	hasher  *auth.Hasher
	log     *slog.Logger
}

func NewService(storage Storage, hasher *auth.Hasher, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{storage: storage, hasher: hasher, log: log}
}

// Create registers a new profile. The email is lowercased before storage so
// that login lookups match regardless of input casing.
func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = auth.RoleCustomer
	}

	u := &User{
		FreelancerID:    params.FreelancerID,
		Name:            params.Name,
		Email:           sanitizer.NormalizeEmail(params.Email),
		PasswordHash:    hash,
		Role:            role,
		ExperienceLevel: params.ExperienceLevel,
		HourlyRate:      params.HourlyRate,
		Skills:          params.Skills,
		Region:          params.Region,
		Platform:        params.Platform,
		PaymentMethod:   params.PaymentMethod,
	}
	if err := s.storage.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user created", logger.Email(u.Email), logger.Role(u.Role))
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.storage.GetByID(ctx, id)
}

// List returns a page of profiles together with pagination meta.
func (s *Service) List(ctx context.Context, params ListParams) ([]User, core.Pagination, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = DefaultPerPage
	}
	if params.PerPage > MaxPerPage {
		params.PerPage = MaxPerPage
	}

	users, total, err := s.storage.List(ctx, params)
	if err != nil {
		return nil, core.Pagination{}, err
	}
	return users, core.NewPagination(total, params.Page, params.PerPage), nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*User, error) {
	updates := bson.M{}
	setIfPresent(updates, "name", params.Name)
	setIfPresent(updates, "experience_level", params.ExperienceLevel)
	setIfPresent(updates, "hourly_rate", params.HourlyRate)
	setIfPresent(updates, "job_success_rate", params.JobSuccessRate)
	setIfPresent(updates, "skills", params.Skills)
	setIfPresent(updates, "region", params.Region)
	setIfPresent(updates, "platform", params.Platform)
	setIfPresent(updates, "earnings_usd", params.EarningsUSD)
	setIfPresent(updates, "client_rating", params.ClientRating)
	setIfPresent(updates, "jobs_completed", params.JobsCompleted)
	setIfPresent(updates, "project_type", params.ProjectType)
	setIfPresent(updates, "rehire_rate", params.RehireRate)
	setIfPresent(updates, "marketing_spend", params.MarketingSpend)
	setIfPresent(updates, "payment_method", params.PaymentMethod)

	if len(updates) == 0 {
		return s.storage.GetByID(ctx, id)
	}
	return s.storage.Update(ctx, id, updates)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "user deleted", logger.AccountID(id))
	return nil
}

func setIfPresent[T any](updates bson.M, key string, v *T) {
	if v != nil {
		updates[key] = *v
	}
}
