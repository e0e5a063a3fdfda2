// Package types provides type definitions for structured data used throughout the job board.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// JobType is the employment arrangement of a listing.
type JobType string

const (
	JobTypeFullTime JobType = "full-time"
	JobTypeContract JobType = "contract"
	JobTypePartTime JobType = "part-time"
)

// JobTypes lists every accepted job type in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypeContract, JobTypePartTime}

// ParseJobType returns the JobType for s, or false when s is not a known job type.
func ParseJobType(s string) (JobType, bool) {
	for _, jt := range JobTypes {
		if string(jt) == s {
			return jt, true
		}
	}
	return "", false
}

// Location is the city/state pair a listing is attached to.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Listing is a job as presented to end users.
// It flattens the company join and nests the location for easier rendering.
type Listing struct {
	ID                   string     `json:"id"`
	Slug                 string     `json:"slug"`
	Title                string     `json:"title"`
	Company              string     `json:"company"`
	CompanyLogo          *string    `json:"companyLogo"`
	Location             Location   `json:"location"`
	SalaryMin            int        `json:"salaryMin"`
	SalaryMax            int        `json:"salaryMax"`
	JobType              JobType    `json:"jobType"`
	Description          string     `json:"description"`
	Requirements         []string   `json:"requirements"`
	PostedDate           time.Time  `json:"postedDate"`
	ApplyURL             string     `json:"applyUrl"`
	Territory            *string    `json:"territory"`
	TravelPercentage     *int       `json:"travelPercentage"`
	IndustryVertical     *string    `json:"industryVertical"`
	IsFeatured           bool       `json:"isFeatured"`
	IsNewsletterFeatured bool       `json:"isNewsletterFeatured"`
	FeaturedUntil        *time.Time `json:"featuredUntil"`
}

// JobFilters holds the optional search criteria for browsing listings.
// Categories are combined with AND; the text matches are OR across their columns.
type JobFilters struct {
	Query     string    `json:"query,omitempty"`
	Location  string    `json:"location,omitempty"`
	JobTypes  []JobType `json:"jobType,omitempty"`
	SalaryMin *int      `json:"salaryMin,omitempty"`
	SalaryMax *int      `json:"salaryMax,omitempty"`
	Industry  []string  `json:"industry,omitempty"`
}

// LocationPage is curated landing-page content for a city.
type LocationPage struct {
	State           string `json:"state"`
	StateAbbr       string `json:"stateAbbr"`
	City            string `json:"city"`
	Slug            string `json:"slug"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Heading         string `json:"heading"`
	Content         string `json:"content"`
}

// Home is the aggregate shown on the landing page.
type Home struct {
	Featured  []Listing  `json:"featured"`
	Recent    []Listing  `json:"recent"`
	Locations []Location `json:"locations"`
}

// LocationListings is a curated city page together with its active listings.
type LocationListings struct {
	Page *LocationPage `json:"page"`
	Jobs []Listing     `json:"jobs"`
}
