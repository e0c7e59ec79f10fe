package users

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ExperienceLevel values accepted for freelancer profiles. The dataset mixes
// two labeling schemes, both are kept.
var ExperienceLevels = []string{"Beginner", "Intermediate", "Expert", "Entry", "Mid", "Senior"}

// User is a freelancer account profile. Email is stored lowercased and
// uniquely identifies the account; PasswordHash never leaves the API.
type User struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FreelancerID    string        `bson:"freelancer_id" json:"freelancerId"`
	Name            string        `bson:"name" json:"name"`
	Email           string        `bson:"email" json:"email"`
	PasswordHash    string        `bson:"password_hash" json:"-"`
	Role            string        `bson:"role" json:"role"`
	ExperienceLevel string        `bson:"experience_level" json:"experienceLevel"`
	HourlyRate      float64       `bson:"hourly_rate" json:"hourlyRate"`
	JobSuccessRate  float64       `bson:"job_success_rate,omitempty" json:"jobSuccessRate,omitempty"`
	Skills          []string      `bson:"skills,omitempty" json:"skills,omitempty"`
	Region          string        `bson:"region" json:"region"`
	Platform        string        `bson:"platform" json:"platform"`
	EarningsUSD     float64       `bson:"earnings_usd,omitempty" json:"earningsUSD,omitempty"`
	ClientRating    float64       `bson:"client_rating,omitempty" json:"clientRating,omitempty"`
	JobsCompleted   int           `bson:"jobs_completed,omitempty" json:"jobsCompleted,omitempty"`
	JobDurationDays float64       `bson:"job_duration_days,omitempty" json:"jobDurationDays,omitempty"`
	ProjectType     string        `bson:"project_type,omitempty" json:"projectType,omitempty"`
	RehireRate      float64       `bson:"rehire_rate,omitempty" json:"rehireRate,omitempty"`
	MarketingSpend  float64       `bson:"marketing_spend,omitempty" json:"marketingSpend,omitempty"`
	PaymentMethod   string        `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}
