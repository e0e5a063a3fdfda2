package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/jobboard/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

// CreateJob inserts a job for an existing company
func (db *DB) CreateJob(ctx context.Context, input JobCreateInput) (*Job, error) {
	return createJob(ctx, db.pool, input)
}

func createJob(ctx context.Context, q dbtx, input JobCreateInput) (*Job, error) {
	if input.Requirements == nil {
		input.Requirements = []string{}
	}
	if input.JobType == "" {
		input.JobType = string(types.JobTypeFullTime)
	}

	var j Job
	err := q.QueryRow(ctx,
		`INSERT INTO jobs (company_id, slug, title, city, state, salary_min, salary_max,
		                   job_type, description, requirements, apply_url, territory,
		                   travel_percentage, industry_vertical, status, is_active, poster_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id, company_id, slug, title, city, state, salary_min, salary_max, job_type,
		           description, requirements, apply_url, territory, travel_percentage,
		           industry_vertical, is_active, posted_at, created_at, status, stripe_session_id,
		           is_featured, is_newsletter_featured, featured_until, poster_email`,
		input.CompanyID, input.Slug, input.Title, input.City, input.State, input.SalaryMin,
		input.SalaryMax, input.JobType, input.Description, input.Requirements, input.ApplyURL,
		input.Territory, input.TravelPercentage, input.IndustryVertical, input.Status,
		input.IsActive, input.PosterEmail,
	).Scan(&j.ID, &j.CompanyID, &j.Slug, &j.Title, &j.City, &j.State, &j.SalaryMin,
		&j.SalaryMax, &j.JobType, &j.Description, &j.Requirements, &j.ApplyURL, &j.Territory,
		&j.TravelPercentage, &j.IndustryVertical, &j.IsActive, &j.PostedAt, &j.CreatedAt,
		&j.Status, &j.StripeSessionID, &j.IsFeatured, &j.IsNewsletterFeatured,
		&j.FeaturedUntil, &j.PosterEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// CreatePendingListing inserts a company and its job in one transaction so a
// failed job insert never leaves an orphaned company behind.
func (db *DB) CreatePendingListing(ctx context.Context, company CompanyCreateInput, job JobCreateInput) (*Company, *Job, error) {
	var (
		c *Company
		j *Job
	)
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		c, err = createCompany(ctx, tx, company)
		if err != nil {
			return err
		}
		job.CompanyID = c.ID
		j, err = createJob(ctx, tx, job)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return c, j, nil
}

// SetJobSessionID records the checkout session that will pay for a job
func (db *DB) SetJobSessionID(ctx context.Context, jobID uuid.UUID, sessionID string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET stripe_session_id = $2 WHERE id = $1`,
		jobID, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to set session id: %w", err)
	}
	return nil
}

// ActivateJob flips a job to active and applies the purchased add-ons.
// Expired jobs are not revived. Returns the number of rows updated.
func (db *DB) ActivateJob(ctx context.Context, jobID uuid.UUID, input ActivateJobInput) (int64, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs
		 SET status = $2, is_active = TRUE, is_featured = $3, is_newsletter_featured = $4,
		     featured_until = $5, posted_at = $6
		 WHERE id = $1 AND status IN ($7, $2)`,
		jobID, JobStatusActive, input.IsFeatured, input.IsNewsletterFeatured,
		input.FeaturedUntil, input.PostedAt, JobStatusPendingPayment,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to activate job: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetJobByID retrieves a job and its company regardless of status
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*JobWithCompany, error) {
	row := db.pool.QueryRow(ctx,
		"SELECT "+jobWithCompanyColumns+jobWithCompanyFrom+" WHERE j.id = $1",
		id,
	)
	j, err := scanJobWithCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// ListActiveJobs lists active jobs matching the filters, newest first
func (db *DB) ListActiveJobs(ctx context.Context, filters types.JobFilters) ([]JobWithCompany, error) {
	query, args := buildActiveJobsQuery(filters)
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return collectJobs(rows)
}

// GetActiveJobBySlug retrieves an active job by slug
func (db *DB) GetActiveJobBySlug(ctx context.Context, slug string) (*JobWithCompany, error) {
	row := db.pool.QueryRow(ctx,
		"SELECT "+jobWithCompanyColumns+jobWithCompanyFrom+
			" WHERE j.slug = $1 AND j.is_active = TRUE",
		slug,
	)
	j, err := scanJobWithCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job by slug: %w", err)
	}
	return j, nil
}

// ListActiveJobsByLocation lists active jobs in a city, matched case-insensitively
func (db *DB) ListActiveJobsByLocation(ctx context.Context, state, city string) ([]JobWithCompany, error) {
	rows, err := db.pool.Query(ctx,
		"SELECT "+jobWithCompanyColumns+jobWithCompanyFrom+
			` WHERE j.is_active = TRUE AND lower(j.state) = lower($1) AND lower(j.city) = lower($2)
			  ORDER BY j.posted_at DESC`,
		state, city,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by location: %w", err)
	}
	return collectJobs(rows)
}

// ListFeaturedJobs lists active jobs whose featured window is still open at now
func (db *DB) ListFeaturedJobs(ctx context.Context, now time.Time, limit int) ([]JobWithCompany, error) {
	rows, err := db.pool.Query(ctx,
		"SELECT "+jobWithCompanyColumns+jobWithCompanyFrom+
			` WHERE j.is_active = TRUE AND j.is_featured = TRUE AND j.featured_until > $1
			  ORDER BY j.posted_at DESC
			  LIMIT $2`,
		now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured jobs: %w", err)
	}
	return collectJobs(rows)
}

// ListUniqueLocations returns each distinct city/state among active jobs,
// compared case-insensitively
func (db *DB) ListUniqueLocations(ctx context.Context) ([]Location, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT DISTINCT ON (lower(state), lower(city)) state, city
		 FROM jobs
		 WHERE is_active = TRUE
		 ORDER BY lower(state), lower(city), posted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []Location{}
	for rows.Next() {
		var loc Location
		if err := rows.Scan(&loc.State, &loc.City); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// ListActiveSlugs returns the slug of every active job
func (db *DB) ListActiveSlugs(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT slug FROM jobs WHERE is_active = TRUE ORDER BY posted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}
	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan slugs: %w", err)
	}
	return slugs, nil
}

// ListPendingJobsOlderThan lists jobs still awaiting payment that were created before cutoff
func (db *DB) ListPendingJobsOlderThan(ctx context.Context, cutoff time.Time) ([]PendingJob, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, slug, title, poster_email, stripe_session_id, created_at
		 FROM jobs
		 WHERE status = $1 AND created_at < $2
		 ORDER BY created_at ASC`,
		JobStatusPendingPayment, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}
	defer rows.Close()

	var pending []PendingJob
	for rows.Next() {
		var p PendingJob
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.PosterEmail, &p.StripeSessionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending job: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}
	return pending, nil
}

func scanJobWithCompany(row pgx.Row) (*JobWithCompany, error) {
	var j JobWithCompany
	err := row.Scan(&j.ID, &j.CompanyID, &j.Slug, &j.Title, &j.City, &j.State,
		&j.SalaryMin, &j.SalaryMax, &j.JobType, &j.Description, &j.Requirements, &j.ApplyURL,
		&j.Territory, &j.TravelPercentage, &j.IndustryVertical, &j.IsActive, &j.PostedAt,
		&j.CreatedAt, &j.Status, &j.StripeSessionID, &j.IsFeatured, &j.IsNewsletterFeatured,
		&j.FeaturedUntil, &j.PosterEmail,
		&j.Company.ID, &j.Company.Name, &j.Company.Website, &j.Company.LogoURL, &j.Company.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJobs(rows pgx.Rows) ([]JobWithCompany, error) {
	defer rows.Close()

	jobs := []JobWithCompany{}
	for rows.Next() {
		j, err := scanJobWithCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
