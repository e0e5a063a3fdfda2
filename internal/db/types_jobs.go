package db

import (
	"time"

	"github.com/google/uuid"
)

// Job status values. Status and IsActive are stored redundantly and are only
// ever written together.
const (
	JobStatusPendingPayment = "pending_payment"
	JobStatusActive         = "active"
	JobStatusExpired        = "expired"
)

// Job represents a job listing record
type Job struct {
	ID                   uuid.UUID  `json:"id"`
	CompanyID            uuid.UUID  `json:"company_id"`
	Slug                 string     `json:"slug"`
	Title                string     `json:"title"`
	City                 string     `json:"city"`
	State                string     `json:"state"`
	SalaryMin            int        `json:"salary_min"`
	SalaryMax            int        `json:"salary_max"`
	JobType              string     `json:"job_type"`
	Description          string     `json:"description"`
	Requirements         []string   `json:"requirements"`
	ApplyURL             string     `json:"apply_url"`
	Territory            *string    `json:"territory,omitempty"`
	TravelPercentage     *int       `json:"travel_percentage,omitempty"`
	IndustryVertical     *string    `json:"industry_vertical,omitempty"`
	IsActive             bool       `json:"is_active"`
	PostedAt             time.Time  `json:"posted_at"`
	CreatedAt            time.Time  `json:"created_at"`
	Status               string     `json:"status"`
	StripeSessionID      *string    `json:"stripe_session_id,omitempty"`
	IsFeatured           bool       `json:"is_featured"`
	IsNewsletterFeatured bool       `json:"is_newsletter_featured"`
	FeaturedUntil        *time.Time `json:"featured_until,omitempty"`
	PosterEmail          *string    `json:"poster_email,omitempty"`
}

// JobWithCompany is a job joined with its company
type JobWithCompany struct {
	Job
	Company Company `json:"company"`
}

// JobCreateInput contains fields for inserting a job.
// CompanyID is filled in by CreatePendingListing when used there.
type JobCreateInput struct {
	CompanyID        uuid.UUID
	Slug             string
	Title            string
	City             string
	State            string
	SalaryMin        int
	SalaryMax        int
	JobType          string
	Description      string
	Requirements     []string
	ApplyURL         string
	Territory        *string
	TravelPercentage *int
	IndustryVertical *string
	Status           string
	IsActive         bool
	PosterEmail      *string
}

// ActivateJobInput holds the values written when a payment is confirmed
type ActivateJobInput struct {
	IsFeatured           bool
	IsNewsletterFeatured bool
	FeaturedUntil        *time.Time
	PostedAt             time.Time
}

// Location is a distinct city/state pair among active jobs
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// PendingJob is a lightweight view of a job still waiting for payment
type PendingJob struct {
	ID              uuid.UUID `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	PosterEmail     *string   `json:"poster_email,omitempty"`
	StripeSessionID *string   `json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
