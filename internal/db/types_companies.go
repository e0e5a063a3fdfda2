package db

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a hiring company record
type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Website   *string   `json:"website,omitempty"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyCreateInput contains fields for creating a company
type CompanyCreateInput struct {
	Name    string
	Website *string
	LogoURL *string
}
