package listings

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Listing is a completed-gig earnings record from one of the tracked
// marketplaces.
type Listing struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FreelancerID    string        `bson:"freelancer_id,omitempty" json:"freelancerId,omitempty"`
	JobCategory     string        `bson:"job_category" json:"jobCategory"`
	Platform        string        `bson:"platform" json:"platform"`
	ExperienceLevel string        `bson:"experience_level" json:"experienceLevel"`
	ClientRegion    string        `bson:"client_region" json:"clientRegion"`
	PaymentMethod   string        `bson:"payment_method" json:"paymentMethod"`
	JobsCompleted   int           `bson:"jobs_completed" json:"jobsCompleted"`
	EarningsUSD     float64       `bson:"earnings_usd" json:"earningsUSD"`
	HourlyRate      float64       `bson:"hourly_rate" json:"hourlyRate"`
	JobSuccessRate  float64       `bson:"job_success_rate" json:"jobSuccessRate"`
	ClientRating    float64       `bson:"client_rating" json:"clientRating"`
	JobDurationDays float64       `bson:"job_duration_days" json:"jobDurationDays"`
	ProjectType     string        `bson:"project_type" json:"projectType"`
	RehireRate      float64       `bson:"rehire_rate" json:"rehireRate"`
	MarketingSpend  float64       `bson:"marketing_spend" json:"marketingSpend"`
	CreatedAt       time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updatedAt"`
}
