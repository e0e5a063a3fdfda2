package posting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/payment"
)

// DefaultFeaturedDuration is how long a featured listing stays in the homepage slot.
const DefaultFeaturedDuration = 30 * 24 * time.Hour

// EventVerifier authenticates and decodes webhook deliveries.
type EventVerifier interface {
	VerifyEvent(body []byte, signature string) (*payment.Event, error)
}

// Confirmation describes what a handled event did.
type Confirmation struct {
	EventID   string
	EventType string
	JobID     uuid.UUID
	Activated bool
}

// Confirmer activates listings when the provider reports a completed checkout.
type Confirmer struct {
	store            Store
	verifier         EventVerifier
	featuredDuration time.Duration
	log              logger.Logger
	metrics          *metrics.Metrics
	now              func() time.Time
}

// NewConfirmer creates a Confirmer. A non-positive featuredDuration uses DefaultFeaturedDuration.
func NewConfirmer(store Store, verifier EventVerifier, featuredDuration time.Duration, log logger.Logger, m *metrics.Metrics) *Confirmer {
	if log == nil {
		log = logger.NewNop()
	}
	if featuredDuration <= 0 {
		featuredDuration = DefaultFeaturedDuration
	}
	return &Confirmer{
		store:            store,
		verifier:         verifier,
		featuredDuration: featuredDuration,
		log:              log,
		metrics:          m,
		now:              time.Now,
	}
}

// HandleEvent verifies a webhook delivery and, for a completed checkout,
// activates the referenced job. A nil error means the delivery should be
// acknowledged. Redelivery re-applies the same values.
func (c *Confirmer) HandleEvent(ctx context.Context, body []byte, signature string) (*Confirmation, error) {
	evt, err := c.verifier.VerifyEvent(body, signature)
	if err != nil {
		c.log.Warn("rejected webhook delivery", logger.Err(err))
		c.metrics.RecordActivation(metrics.OutcomeSignatureError)
		return nil, &SignatureError{Err: err}
	}
	c.metrics.RecordWebhookEvent(evt.Type)

	result := &Confirmation{EventID: evt.ID, EventType: evt.Type}
	if evt.Type != payment.EventCheckoutCompleted {
		c.log.Debug("ignoring webhook event", logger.String("event_type", evt.Type))
		return result, nil
	}

	var meta payment.Metadata
	if evt.Session != nil {
		meta = evt.Session.Metadata
	}
	if meta.JobID == "" {
		c.log.Error("checkout event has no job id", logger.String("event_id", evt.ID))
		c.metrics.RecordActivation(metrics.OutcomeMissingMetadata)
		return nil, &MissingMetadataError{Key: payment.MetadataJobID}
	}
	jobID, err := uuid.Parse(meta.JobID)
	if err != nil {
		c.log.Error("checkout event has malformed job id",
			logger.String("event_id", evt.ID),
			logger.String("job_id", meta.JobID))
		c.metrics.RecordActivation(metrics.OutcomeMissingMetadata)
		return nil, &MissingMetadataError{Key: payment.MetadataJobID, Value: meta.JobID}
	}
	result.JobID = jobID
	log := c.log.With(logger.String("event_id", evt.ID), logger.String("job_id", jobID.String()))

	now := c.now()
	input := db.ActivateJobInput{
		IsFeatured:           meta.IsFeatured,
		IsNewsletterFeatured: meta.IsNewsletterFeatured,
		PostedAt:             now,
	}
	if meta.IsFeatured {
		until := now.Add(c.featuredDuration)
		input.FeaturedUntil = &until
	}

	rows, err := c.store.ActivateJob(ctx, jobID, input)
	if err != nil {
		log.Error("failed to activate job", logger.Err(err))
		c.metrics.RecordActivation(metrics.OutcomePersistError)
		return nil, &PersistenceError{Op: "activate job", Err: err}
	}
	if rows == 0 {
		c.explainNoop(ctx, log, jobID)
		c.metrics.RecordActivation(metrics.OutcomeNotFound)
		return result, nil
	}

	result.Activated = true
	log.Info("job activated",
		logger.Bool("featured", meta.IsFeatured),
		logger.Bool("newsletter", meta.IsNewsletterFeatured))
	c.metrics.RecordActivation(metrics.OutcomeSuccess)
	return result, nil
}

// explainNoop logs why an activation touched no rows. The delivery is still
// acknowledged; retrying would not change the outcome.
func (c *Confirmer) explainNoop(ctx context.Context, log logger.Logger, jobID uuid.UUID) {
	job, err := c.store.GetJobByID(ctx, jobID)
	switch {
	case err != nil:
		log.Warn("activation updated no rows", logger.Err(err))
	case job == nil:
		log.Warn("activation updated no rows: job not found")
	default:
		status, perr := ParseStatus(job.Status)
		if perr == nil && !CanActivate(status) {
			log.Warn("activation updated no rows: status does not allow activation",
				logger.String("status", job.Status))
			return
		}
		log.Warn("activation updated no rows", logger.String("status", job.Status))
	}
}
