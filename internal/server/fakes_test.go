package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/listing"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/payment"
	"github.com/jonathan/jobboard/internal/posting"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_server_test"

// memStore is an in-memory record store serving both the listing and posting sides.
type memStore struct {
	mu        sync.Mutex
	companies map[uuid.UUID]db.Company
	jobs      map[uuid.UUID]*db.Job

	pingErr   error
	queryErr  error
	createErr error
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[uuid.UUID]db.Company{},
		jobs:      map[uuid.UUID]*db.Job{},
	}
}

func (s *memStore) Ping(context.Context) error { return s.pingErr }

// seedActive inserts an already-paid listing.
func (s *memStore) seedActive(slug, title, company, city, state string, posted time.Time) *db.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := db.Company{ID: uuid.New(), Name: company, CreatedAt: posted}
	s.companies[c.ID] = c
	j := &db.Job{
		ID:           uuid.New(),
		CompanyID:    c.ID,
		Slug:         slug,
		Title:        title,
		City:         city,
		State:        state,
		JobType:      "full-time",
		Requirements: []string{},
		IsActive:     true,
		Status:       db.JobStatusActive,
		PostedAt:     posted,
		CreatedAt:    posted,
	}
	s.jobs[j.ID] = j
	return j
}

func (s *memStore) job(id uuid.UUID) (db.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return db.Job{}, false
	}
	return *j, true
}

func (s *memStore) onlyJob(t *testing.T) db.Job {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.jobs, 1)
	for _, j := range s.jobs {
		return *j
	}
	return db.Job{}
}

func (s *memStore) withCompany(j *db.Job) db.JobWithCompany {
	return db.JobWithCompany{Job: *j, Company: s.companies[j.CompanyID]}
}

func (s *memStore) active(match func(*db.Job) bool) []db.JobWithCompany {
	out := []db.JobWithCompany{}
	for _, j := range s.jobs {
		if j.IsActive && match(j) {
			out = append(out, s.withCompany(j))
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].PostedAt.After(out[b].PostedAt) })
	return out
}

func (s *memStore) ListActiveJobs(_ context.Context, f types.JobFilters) ([]db.JobWithCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	q := strings.ToLower(f.Query)
	return s.active(func(j *db.Job) bool {
		return q == "" || strings.Contains(strings.ToLower(j.Title), q)
	}), nil
}

func (s *memStore) GetActiveJobBySlug(_ context.Context, slug string) (*db.JobWithCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	rows := s.active(func(j *db.Job) bool { return j.Slug == slug })
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *memStore) ListActiveJobsByLocation(_ context.Context, state, city string) ([]db.JobWithCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.active(func(j *db.Job) bool {
		return strings.EqualFold(j.State, state) && strings.EqualFold(j.City, city)
	}), nil
}

func (s *memStore) ListFeaturedJobs(_ context.Context, now time.Time, limit int) ([]db.JobWithCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	rows := s.active(func(j *db.Job) bool {
		return j.IsFeatured && j.FeaturedUntil != nil && j.FeaturedUntil.After(now)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *memStore) ListUniqueLocations(context.Context) ([]db.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	seen := map[string]bool{}
	out := []db.Location{}
	for _, row := range s.active(func(*db.Job) bool { return true }) {
		key := strings.ToLower(row.State + "|" + row.City)
		if !seen[key] {
			seen[key] = true
			out = append(out, db.Location{City: row.City, State: row.State})
		}
	}
	return out, nil
}

func (s *memStore) ListActiveSlugs(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	out := []string{}
	for _, row := range s.active(func(*db.Job) bool { return true }) {
		out = append(out, row.Slug)
	}
	return out, nil
}

func (s *memStore) CreatePendingListing(_ context.Context, company db.CompanyCreateInput, job db.JobCreateInput) (*db.Company, *db.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, nil, s.createErr
	}
	c := db.Company{ID: uuid.New(), Name: company.Name, Website: company.Website, CreatedAt: time.Now()}
	s.companies[c.ID] = c
	j := &db.Job{
		ID:           uuid.New(),
		CompanyID:    c.ID,
		Slug:         job.Slug,
		Title:        job.Title,
		City:         job.City,
		State:        job.State,
		JobType:      job.JobType,
		Description:  job.Description,
		Requirements: job.Requirements,
		ApplyURL:     job.ApplyURL,
		Status:       job.Status,
		IsActive:     job.IsActive,
		PosterEmail:  job.PosterEmail,
		CreatedAt:    time.Now(),
	}
	s.jobs[j.ID] = j
	cp := *j
	return &c, &cp, nil
}

func (s *memStore) SetJobSessionID(_ context.Context, jobID uuid.UUID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[jobID]; ok {
		j.StripeSessionID = &sessionID
	}
	return nil
}

func (s *memStore) ActivateJob(_ context.Context, jobID uuid.UUID, in db.ActivateJobInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[jobID]
	if !ok || (j.Status != db.JobStatusPendingPayment && j.Status != db.JobStatusActive) {
		return 0, nil
	}
	j.Status = db.JobStatusActive
	j.IsActive = true
	j.IsFeatured = in.IsFeatured
	j.IsNewsletterFeatured = in.IsNewsletterFeatured
	j.FeaturedUntil = in.FeaturedUntil
	j.PostedAt = in.PostedAt
	return 1, nil
}

func (s *memStore) GetJobByID(_ context.Context, id uuid.UUID) (*db.JobWithCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	row := s.withCompany(j)
	return &row, nil
}

// checkoutGateway opens fake hosted sessions. Webhook verification is delegated
// to a real StripeGateway so signatures are checked end to end.
type checkoutGateway struct {
	*payment.StripeGateway

	mu        sync.Mutex
	sessions  map[string]*payment.Session
	createErr error
}

func newCheckoutGateway(t *testing.T) *checkoutGateway {
	t.Helper()
	sg, err := payment.NewStripeGateway("sk_test_server", testWebhookSecret)
	require.NoError(t, err)
	return &checkoutGateway{StripeGateway: sg, sessions: map[string]*payment.Session{}}
}

func (g *checkoutGateway) CreateCheckoutSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	id := "cs_test_" + uuid.NewString()[:8]
	sess := &payment.Session{ID: id, URL: "https://checkout.stripe.test/" + id, Metadata: req.Metadata}
	g.sessions[id] = sess
	return sess, nil
}

func (g *checkoutGateway) GetSession(_ context.Context, id string) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sess, ok := g.sessions[id]
	if !ok {
		return nil, errors.New("no such checkout session")
	}
	return sess, nil
}

type testServer struct {
	*Server
	store   *memStore
	gateway *checkoutGateway
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLimits(t, &ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    10000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	})
}

func newTestServerWithLimits(t *testing.T, limits *ratelimit.Config) *testServer {
	t.Helper()
	store := newMemStore()
	gateway := newCheckoutGateway(t)
	m := metrics.New()

	s, err := New(0, Deps{
		Listings:  listing.NewService(store, nil, m),
		Submitter: posting.NewSubmitter(store, gateway, posting.SubmitterConfig{SiteURL: "https://jobs.test"}, nil, m),
		Confirmer: posting.NewConfirmer(store, gateway, 0, nil, m),
		Store:     store,
		Metrics:   m,
		RateLimit: limits,
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)

	return &testServer{Server: s, store: store, gateway: gateway, metrics: m}
}

// do sends a request through the full middleware chain.
func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	if req.RemoteAddr == "" {
		req.RemoteAddr = "192.0.2.1:1234"
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}
