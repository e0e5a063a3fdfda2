// Package listing serves the public, read-only view of active job listings.
//
// Store failures never reach callers: every query degrades to an empty
// result or not-found, is logged, and is counted so that alerting can tell
// "no data" apart from "query failed".
package listing

import (
	"context"
	"time"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	// FeaturedLimit caps the homepage featured slot.
	FeaturedLimit = 5
	// RecentLimit is how many of the newest listings the homepage shows.
	RecentLimit = 6
)

// Store is the read side of the record store. *db.DB satisfies it.
type Store interface {
	ListActiveJobs(ctx context.Context, filters types.JobFilters) ([]db.JobWithCompany, error)
	GetActiveJobBySlug(ctx context.Context, slug string) (*db.JobWithCompany, error)
	ListActiveJobsByLocation(ctx context.Context, state, city string) ([]db.JobWithCompany, error)
	ListFeaturedJobs(ctx context.Context, now time.Time, limit int) ([]db.JobWithCompany, error)
	ListUniqueLocations(ctx context.Context) ([]db.Location, error)
	ListActiveSlugs(ctx context.Context) ([]string, error)
}

var _ Store = (*db.DB)(nil)

// Service answers listing queries.
type Service struct {
	store   Store
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService creates a listing Service.
func NewService(store Store, log logger.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{store: store, log: log, metrics: m, now: time.Now}
}

// ListActive returns active listings matching filters, newest first.
func (s *Service) ListActive(ctx context.Context, filters types.JobFilters) []types.Listing {
	rows, err := s.store.ListActiveJobs(ctx, filters)
	if err != nil {
		s.queryFailed("list_active", err, logger.Any("filters", filters))
		return []types.Listing{}
	}
	return ToListings(rows)
}

// GetBySlug returns the active listing with slug, or false when there is none.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*types.Listing, bool) {
	if slug == "" {
		return nil, false
	}
	row, err := s.store.GetActiveJobBySlug(ctx, slug)
	if err != nil {
		s.queryFailed("get_by_slug", err, logger.String("slug", slug))
		return nil, false
	}
	if row == nil || !row.IsActive {
		return nil, false
	}
	l := ToListing(*row)
	return &l, true
}

// ListByLocation returns active listings in a city. Matching is exact but case-insensitive.
func (s *Service) ListByLocation(ctx context.Context, city, state string) []types.Listing {
	rows, err := s.store.ListActiveJobsByLocation(ctx, state, city)
	if err != nil {
		s.queryFailed("list_by_location", err, logger.String("city", city), logger.String("state", state))
		return []types.Listing{}
	}
	return ToListings(rows)
}

// Featured returns up to FeaturedLimit listings whose featured window is still open.
func (s *Service) Featured(ctx context.Context) []types.Listing {
	rows, err := s.store.ListFeaturedJobs(ctx, s.now(), FeaturedLimit)
	if err != nil {
		s.queryFailed("featured", err)
		return []types.Listing{}
	}
	return ToListings(rows)
}

// Locations returns each city/state with at least one active listing.
func (s *Service) Locations(ctx context.Context) []types.Location {
	rows, err := s.store.ListUniqueLocations(ctx)
	if err != nil {
		s.queryFailed("locations", err)
		return []types.Location{}
	}
	out := make([]types.Location, len(rows))
	for i, r := range rows {
		out[i] = types.Location{City: r.City, State: r.State}
	}
	return out
}

// Slugs returns the slug of every active listing, for sitemaps.
func (s *Service) Slugs(ctx context.Context) []string {
	slugs, err := s.store.ListActiveSlugs(ctx)
	if err != nil {
		s.queryFailed("slugs", err)
		return []string{}
	}
	if slugs == nil {
		return []string{}
	}
	return slugs
}

// Home loads the landing page sections concurrently.
func (s *Service) Home(ctx context.Context) types.Home {
	var home types.Home
	var g errgroup.Group

	g.Go(func() error {
		home.Featured = s.Featured(ctx)
		return nil
	})
	g.Go(func() error {
		recent := s.ListActive(ctx, types.JobFilters{})
		if len(recent) > RecentLimit {
			recent = recent[:RecentLimit]
		}
		home.Recent = recent
		return nil
	})
	g.Go(func() error {
		home.Locations = s.Locations(ctx)
		return nil
	})

	_ = g.Wait()
	return home
}

// LocationListings returns the curated page for a city and the listings in it.
// State may be the full name or the postal abbreviation.
func (s *Service) LocationListings(ctx context.Context, state, city string) (*types.LocationListings, bool) {
	page, ok := FindLocationPage(state, city)
	if !ok {
		return nil, false
	}
	return &types.LocationListings{
		Page: page,
		Jobs: s.ListByLocation(ctx, page.City, page.StateAbbr),
	}, true
}

func (s *Service) queryFailed(op string, err error, fields ...logger.Field) {
	fields = append(fields, logger.String("operation", op), logger.Err(err))
	s.log.Error("listing query failed", fields...)
	s.metrics.RecordListingFailure(op)
}

// ToListing converts a stored job into its display shape.
func ToListing(j db.JobWithCompany) types.Listing {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return types.Listing{
		ID:                   j.ID.String(),
		Slug:                 j.Slug,
		Title:                j.Title,
		Company:              j.Company.Name,
		CompanyLogo:          j.Company.LogoURL,
		Location:             types.Location{City: j.City, State: j.State},
		SalaryMin:            j.SalaryMin,
		SalaryMax:            j.SalaryMax,
		JobType:              types.JobType(j.JobType),
		Description:          j.Description,
		Requirements:         reqs,
		PostedDate:           j.PostedAt,
		ApplyURL:             j.ApplyURL,
		Territory:            j.Territory,
		TravelPercentage:     j.TravelPercentage,
		IndustryVertical:     j.IndustryVertical,
		IsFeatured:           j.IsFeatured,
		IsNewsletterFeatured: j.IsNewsletterFeatured,
		FeaturedUntil:        j.FeaturedUntil,
	}
}

// ToListings converts stored jobs, always returning a non-nil slice.
func ToListings(rows []db.JobWithCompany) []types.Listing {
	out := make([]types.Listing, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToListing(r))
	}
	return out
}
