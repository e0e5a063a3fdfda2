package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

func checkoutCompletedPayload(jobID string, featured, newsletter bool) string {
	return fmt.Sprintf(`{
  "id": "evt_%s",
  "object": "event",
  "type": "checkout.session.completed",
  "api_version": "2020-08-27",
  "data": {
    "object": {
      "id": "cs_test_hook",
      "object": "checkout.session",
      "payment_status": "paid",
      "metadata": {"job_id": %q, "is_featured": "%t", "is_newsletter_featured": "%t"}
    }
  }
}`, uuid.NewString()[:8], jobID, featured, newsletter)
}

func postWebhook(s *testServer, payload, secret string) *httptest.ResponseRecorder {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  secret,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(signed.Payload))
	req.Header.Set("Stripe-Signature", signed.Header)
	return s.do(req)
}

// submitPending runs the checkout endpoint and returns the created job.
func submitPending(t *testing.T, s *testServer) db.Job {
	t.Helper()
	w := postCheckout(s, validCheckoutBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return s.store.onlyJob(t)
}

func TestWebhook_ActivatesFeaturedJob(t *testing.T) {
	s := newTestServer(t)
	pending := submitPending(t, s)
	before := time.Now()

	w := postWebhook(s, checkoutCompletedPayload(pending.ID.String(), true, true), testWebhookSecret)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"received": true}`, w.Body.String())

	job, ok := s.store.job(pending.ID)
	require.True(t, ok)
	assert.Equal(t, db.JobStatusActive, job.Status)
	assert.True(t, job.IsActive)
	assert.True(t, job.IsFeatured)
	assert.True(t, job.IsNewsletterFeatured)
	require.NotNil(t, job.FeaturedUntil)
	assert.WithinDuration(t, before.Add(30*24*time.Hour), *job.FeaturedUntil, time.Minute)
	assert.False(t, job.PostedAt.Before(before))

	listed := s.do(httptest.NewRequest(http.MethodGet, "/api/jobs/"+job.Slug, nil))
	assert.Equal(t, http.StatusOK, listed.Code)

	featured := s.do(httptest.NewRequest(http.MethodGet, "/api/jobs/featured", nil))
	assert.Contains(t, featured.Body.String(), job.Slug)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Activations.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestWebhook_StandardListingHasNoFeaturedWindow(t *testing.T) {
	s := newTestServer(t)
	pending := submitPending(t, s)

	w := postWebhook(s, checkoutCompletedPayload(pending.ID.String(), false, false), testWebhookSecret)

	require.Equal(t, http.StatusOK, w.Code)
	job, _ := s.store.job(pending.ID)
	assert.True(t, job.IsActive)
	assert.False(t, job.IsFeatured)
	assert.Nil(t, job.FeaturedUntil)
}

func TestWebhook_RedeliveryIsAcknowledged(t *testing.T) {
	s := newTestServer(t)
	pending := submitPending(t, s)
	payload := checkoutCompletedPayload(pending.ID.String(), false, true)

	for i := range 2 {
		w := postWebhook(s, payload, testWebhookSecret)
		assert.Equal(t, http.StatusOK, w.Code, "delivery %d", i)
	}

	job, _ := s.store.job(pending.ID)
	assert.Equal(t, db.JobStatusActive, job.Status)
	assert.True(t, job.IsNewsletterFeatured)
}

func TestWebhook_SignatureFailures(t *testing.T) {
	s := newTestServer(t)
	pending := submitPending(t, s)
	payload := checkoutCompletedPayload(pending.ID.String(), true, false)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader([]byte(payload)))
		w := s.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing signature", errorBody(t, w))
	})

	t.Run("wrong secret", func(t *testing.T) {
		w := postWebhook(s, payload, "whsec_someone_else")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid signature", errorBody(t, w))
	})

	t.Run("tampered body", func(t *testing.T) {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload: []byte(payload),
			Secret:  testWebhookSecret,
		})
		tampered := bytes.Replace(signed.Payload, []byte(`"is_featured": "true"`), []byte(`"is_featured": "false"`), 1)
		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", bytes.NewReader(tampered))
		req.Header.Set("Stripe-Signature", signed.Header)

		w := s.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	job, _ := s.store.job(pending.ID)
	assert.Equal(t, db.JobStatusPendingPayment, job.Status, "rejected deliveries must not mutate state")
}

func TestWebhook_MissingJobID(t *testing.T) {
	s := newTestServer(t)

	for _, id := range []string{"", "not-a-uuid"} {
		w := postWebhook(s, checkoutCompletedPayload(id, false, false), testWebhookSecret)
		assert.Equal(t, http.StatusBadRequest, w.Code, "job_id %q", id)
		assert.Equal(t, "Missing job_id", errorBody(t, w))
	}
}

func TestWebhook_UnknownJobIsAcknowledged(t *testing.T) {
	s := newTestServer(t)

	w := postWebhook(s, checkoutCompletedPayload(uuid.NewString(), false, false), testWebhookSecret)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Activations.WithLabelValues(metrics.OutcomeNotFound)))
}

func TestWebhook_OtherEventTypesAcknowledged(t *testing.T) {
	s := newTestServer(t)

	w := postWebhook(s, `{"id":"evt_other","object":"event","type":"payment_intent.created","data":{"object":{"id":"pi_1"}}}`, testWebhookSecret)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.WebhookEvents.WithLabelValues("payment_intent.created")))
}
