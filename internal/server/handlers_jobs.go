package server

import (
	"net/http"

	"github.com/jonathan/jobboard/internal/listing"
)

// handleListJobs returns active listings matching the query filters.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.listings.ListActive(r.Context(), listing.ParseFilters(r.URL.Query()))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// handleGetJob returns one active listing by slug.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		s.errorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	job, ok := s.listings.GetBySlug(r.Context(), slug)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

func (s *Server) handleJobsByLocation(w http.ResponseWriter, r *http.Request) {
	jobs := s.listings.ListByLocation(r.Context(), r.PathValue("city"), r.PathValue("state"))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleFeaturedJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.listings.Featured(r.Context())
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"locations": s.listings.Locations(r.Context()),
		"pages":     listing.LocationPages(),
	})
}

// handleLocationPage returns a curated city page with its listings.
func (s *Server) handleLocationPage(w http.ResponseWriter, r *http.Request) {
	result, ok := s.listings.LocationListings(r.Context(), r.PathValue("state"), r.PathValue("city"))
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Location not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleListSlugs(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"slugs": s.listings.Slugs(r.Context())})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.listings.Home(r.Context()))
}
