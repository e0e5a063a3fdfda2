package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Company Methods
// -----------------------------------------------------------------------------

// CreateCompany inserts a new company. Companies are never deduplicated:
// every submission gets its own row.
func (db *DB) CreateCompany(ctx context.Context, input CompanyCreateInput) (*Company, error) {
	return createCompany(ctx, db.pool, input)
}

func createCompany(ctx context.Context, q dbtx, input CompanyCreateInput) (*Company, error) {
	var c Company
	err := q.QueryRow(ctx,
		`INSERT INTO companies (name, website, logo_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, website, logo_url, created_at`,
		input.Name, input.Website, input.LogoURL,
	).Scan(&c.ID, &c.Name, &c.Website, &c.LogoURL, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &c, nil
}

// GetCompanyByID retrieves a company by ID
func (db *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, website, logo_url, created_at FROM companies WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Website, &c.LogoURL, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &c, nil
}
