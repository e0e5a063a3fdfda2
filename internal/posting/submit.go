package posting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/payment"
	"github.com/jonathan/jobboard/internal/types"
)

// SubmitterConfig holds the values used to build checkout redirects.
type SubmitterConfig struct {
	SiteURL  string
	Currency string
}

// Submitter turns a submitted job form into a pending listing and a hosted checkout.
type Submitter struct {
	store   Store
	gateway payment.Gateway
	cfg     SubmitterConfig
	log     logger.Logger
	metrics *metrics.Metrics

	// slug is swappable in tests.
	slug func(title, companyName string) string
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	JobID       uuid.UUID
	Slug        string
	SessionID   string
	RedirectURL string
	Total       int64
}

// NewSubmitter creates a Submitter. A nil logger discards output and nil metrics record nothing.
func NewSubmitter(store Store, gateway payment.Gateway, cfg SubmitterConfig, log logger.Logger, m *metrics.Metrics) *Submitter {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	return &Submitter{
		store:   store,
		gateway: gateway,
		cfg:     cfg,
		log:     log,
		metrics: m,
		slug:    GenerateSlug,
	}
}

// SuccessURL is where the provider sends the browser after payment.
func (s *Submitter) SuccessURL() string {
	return s.cfg.SiteURL + "/post-job/success?session_id=" + payment.SessionIDPlaceholder
}

// CancelURL is where the provider sends the browser when checkout is abandoned.
func (s *Submitter) CancelURL() string {
	return s.cfg.SiteURL + "/post-job?canceled=true"
}

// Submit validates the form, stores the company and a pending job, opens a
// checkout session and returns its redirect URL.
// Resubmitting always creates new records; nothing is deduplicated.
func (s *Submitter) Submit(ctx context.Context, req *types.CheckoutRequest) (*SubmitResult, error) {
	if req == nil {
		s.metrics.RecordSubmission(metrics.OutcomeValidationError)
		return nil, &ValidationError{Message: "request body is required"}
	}
	req.Normalize()
	if err := validateRequest(req); err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeValidationError)
		return nil, err
	}

	jobData := req.JobData
	slug := s.slug(jobData.Title, jobData.CompanyName)

	_, job, err := s.store.CreatePendingListing(ctx, companyInput(jobData), jobInput(jobData, slug))
	if err != nil {
		s.log.Error("failed to create pending listing",
			logger.String("slug", slug),
			logger.Err(err))
		s.metrics.RecordSubmission(metrics.OutcomePersistError)
		return nil, &PersistenceError{Op: "create listing", Err: err}
	}

	log := s.log.With(logger.String("job_id", job.ID.String()), logger.String("slug", job.Slug))

	cart := BuildCart(jobData, req.Pricing)
	sess, err := s.gateway.CreateCheckoutSession(ctx, payment.SessionRequest{
		Currency:      s.cfg.Currency,
		LineItems:     cart.Items,
		SuccessURL:    s.SuccessURL(),
		CancelURL:     s.CancelURL(),
		CustomerEmail: jobData.PosterEmail,
		Metadata: payment.Metadata{
			JobID:                job.ID.String(),
			IsFeatured:           req.Pricing.IsFeatured,
			IsNewsletterFeatured: req.Pricing.IsNewsletterFeatured,
		},
	})
	if err == nil && (sess == nil || sess.URL == "") {
		err = errors.New("checkout session has no redirect url")
	}
	if err != nil {
		// The pending job stays behind; it is invisible and reported by `jobboard pending`.
		log.Error("failed to create checkout session", logger.Err(err))
		s.metrics.RecordSubmission(metrics.OutcomeGatewayError)
		return nil, &GatewayError{Err: err}
	}

	// Activation keys off the job id in session metadata, so this back-reference is best-effort.
	if err := s.store.SetJobSessionID(ctx, job.ID, sess.ID); err != nil {
		log.Warn("failed to record checkout session on job",
			logger.String("session_id", sess.ID),
			logger.Err(err))
	}

	log.Info("checkout session created",
		logger.String("session_id", sess.ID),
		logger.Int64("total", cart.Total()),
		logger.Bool("featured", req.Pricing.IsFeatured),
		logger.Bool("newsletter", req.Pricing.IsNewsletterFeatured))
	s.metrics.RecordSubmission(metrics.OutcomeSuccess)

	return &SubmitResult{
		JobID:       job.ID,
		Slug:        job.Slug,
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
		Total:       cart.Total(),
	}, nil
}

// LookupSuccess resolves the job behind a checkout session for the
// post-payment page. It never fails; unresolved lookups return empty fields.
func (s *Submitter) LookupSuccess(ctx context.Context, sessionID string) types.CheckoutSuccess {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return types.CheckoutSuccess{}
	}
	log := s.log.With(logger.String("session_id", sessionID))

	sess, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		log.Warn("failed to retrieve checkout session", logger.Err(err))
		return types.CheckoutSuccess{}
	}
	jobID, err := uuid.Parse(sess.Metadata.JobID)
	if err != nil {
		log.Warn("checkout session has no usable job id", logger.String("job_id", sess.Metadata.JobID))
		return types.CheckoutSuccess{}
	}
	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		log.Warn("failed to load job for checkout session", logger.Err(err))
		return types.CheckoutSuccess{}
	}
	if job == nil {
		return types.CheckoutSuccess{}
	}
	return types.CheckoutSuccess{JobSlug: job.Slug, JobTitle: job.Title}
}

func validateRequest(req *types.CheckoutRequest) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error()}
	}

	var missing, invalid []string
	for _, fe := range verrs {
		name := lowerFirst(fe.Field())
		if fe.Tag() == "required" {
			missing = append(missing, name)
		} else {
			invalid = append(invalid, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return &ValidationError{
		Fields:  invalid,
		Message: fmt.Sprintf("invalid fields: %s", strings.Join(invalid, ", ")),
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func companyInput(d types.JobFormData) db.CompanyCreateInput {
	return db.CompanyCreateInput{
		Name:    d.CompanyName,
		Website: optionalString(d.CompanyWebsite),
	}
}

func jobInput(d types.JobFormData, slug string) db.JobCreateInput {
	in := db.JobCreateInput{
		Slug:             slug,
		Title:            d.Title,
		City:             d.City,
		State:            d.State,
		SalaryMin:        d.SalaryMin,
		SalaryMax:        d.SalaryMax,
		JobType:          string(d.JobType),
		Description:      d.Description,
		Requirements:     d.NonEmptyRequirements(),
		ApplyURL:         d.ApplyURL,
		Territory:        optionalString(d.Territory),
		IndustryVertical: optionalString(d.IndustryVertical),
		Status:           string(StatusPendingPayment),
		IsActive:         false,
		PosterEmail:      optionalString(d.PosterEmail),
	}
	if d.TravelPercentage > 0 {
		tp := d.TravelPercentage
		in.TravelPercentage = &tp
	}
	return in
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
