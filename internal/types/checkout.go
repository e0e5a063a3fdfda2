//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// JobFormData is the job listing form submitted by a poster.
type JobFormData struct {
	Title            string   `json:"title" validate:"required"`
	CompanyName      string   `json:"companyName" validate:"required"`
	CompanyWebsite   string   `json:"companyWebsite,omitempty"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	JobType          JobType  `json:"jobType,omitempty" validate:"omitempty,oneof=full-time contract part-time"`
	SalaryMin        int      `json:"salaryMin" validate:"gte=0"`
	SalaryMax        int      `json:"salaryMax" validate:"gte=0"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	ApplyURL         string   `json:"applyUrl"`
	Territory        string   `json:"territory,omitempty"`
	TravelPercentage int      `json:"travelPercentage,omitempty" validate:"gte=0,lte=100"`
	IndustryVertical string   `json:"industryVertical,omitempty"`
	PosterEmail      string   `json:"posterEmail" validate:"required"`
}

// PricingOptions are the paid add-ons selected on the form.
type PricingOptions struct {
	IsFeatured           bool `json:"isFeatured"`
	IsNewsletterFeatured bool `json:"isNewsletterFeatured"`
}

// CheckoutRequest is the body of the submission endpoint.
type CheckoutRequest struct {
	JobData JobFormData    `json:"jobData"`
	Pricing PricingOptions `json:"pricing"`
}

// CheckoutResponse carries the hosted checkout URL the browser is sent to.
type CheckoutResponse struct {
	SessionURL string `json:"sessionUrl"`
}

// CheckoutSuccess is the informational payload for the post-payment landing page.
// Both fields are empty when the job could not be resolved.
type CheckoutSuccess struct {
	JobSlug  string `json:"jobSlug,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
}

// Normalize trims surrounding whitespace from the required text fields so that
// whitespace-only values fail the required check.
func (r *CheckoutRequest) Normalize() {
	r.JobData.Title = strings.TrimSpace(r.JobData.Title)
	r.JobData.CompanyName = strings.TrimSpace(r.JobData.CompanyName)
	r.JobData.PosterEmail = strings.TrimSpace(r.JobData.PosterEmail)
}

// Validate validates the CheckoutRequest using the validator.
func (r *CheckoutRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// NonEmptyRequirements returns the requirement lines that are not blank.
func (d *JobFormData) NonEmptyRequirements() []string {
	out := make([]string, 0, len(d.Requirements))
	for _, req := range d.Requirements {
		if strings.TrimSpace(req) == "" {
			continue
		}
		out = append(out, req)
	}
	return out
}
