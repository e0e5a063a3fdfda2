package posting

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/payment"
)

// memStore mimics the guarded updates of *db.DB in memory.
type memStore struct {
	mu        sync.Mutex
	companies []db.Company
	jobs      map[uuid.UUID]*db.Job

	createErr     error
	setSessionErr error
	activateErr   error
}

func newMemStore() *memStore {
	return &memStore{jobs: map[uuid.UUID]*db.Job{}}
}

func (s *memStore) CreatePendingListing(_ context.Context, company db.CompanyCreateInput, job db.JobCreateInput) (*db.Company, *db.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, nil, s.createErr
	}
	c := db.Company{ID: uuid.New(), Name: company.Name, Website: company.Website, CreatedAt: time.Now()}
	s.companies = append(s.companies, c)

	j := &db.Job{
		ID:               uuid.New(),
		CompanyID:        c.ID,
		Slug:             job.Slug,
		Title:            job.Title,
		City:             job.City,
		State:            job.State,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
		JobType:          job.JobType,
		Description:      job.Description,
		Requirements:     job.Requirements,
		ApplyURL:         job.ApplyURL,
		Territory:        job.Territory,
		TravelPercentage: job.TravelPercentage,
		IndustryVertical: job.IndustryVertical,
		IsActive:         job.IsActive,
		Status:           job.Status,
		PosterEmail:      job.PosterEmail,
		CreatedAt:        time.Now(),
	}
	s.jobs[j.ID] = j
	cp := *j
	return &c, &cp, nil
}

func (s *memStore) SetJobSessionID(_ context.Context, jobID uuid.UUID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setSessionErr != nil {
		return s.setSessionErr
	}
	if j, ok := s.jobs[jobID]; ok {
		j.StripeSessionID = &sessionID
	}
	return nil
}

func (s *memStore) ActivateJob(_ context.Context, jobID uuid.UUID, in db.ActivateJobInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activateErr != nil {
		return 0, s.activateErr
	}
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
	return &db.JobWithCompany{Job: *j}, nil
}

func (s *memStore) job(id uuid.UUID) db.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.jobs[id]
}

// fakeGateway records checkout requests and returns canned events.
type fakeGateway struct {
	requests []payment.SessionRequest
	sessions map[string]*payment.Session

	createErr error
	getErr    error
	event     *payment.Event
	verifyErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*payment.Session{}}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req payment.SessionRequest) (*payment.Session, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.requests = append(g.requests, req)
	id := "cs_test_" + uuid.NewString()[:8]
	s := &payment.Session{ID: id, URL: "https://checkout.example/" + id, Metadata: req.Metadata}
	g.sessions[id] = s
	return s, nil
}

func (g *fakeGateway) GetSession(_ context.Context, id string) (*payment.Session, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	s, ok := g.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return s, nil
}

func (g *fakeGateway) VerifyEvent(body []byte, signature string) (*payment.Event, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	if signature == "" {
		return nil, payment.ErrMissingSignature
	}
	return g.event, nil
}

func completedEvent(jobID string, featured, newsletter bool) *payment.Event {
	return &payment.Event{
		ID:   "evt_" + uuid.NewString()[:8],
		Type: payment.EventCheckoutCompleted,
		Session: &payment.Session{
			ID: "cs_test",
			Metadata: payment.Metadata{
				JobID:                jobID,
				IsFeatured:           featured,
				IsNewsletterFeatured: newsletter,
			},
		},
	}
}
