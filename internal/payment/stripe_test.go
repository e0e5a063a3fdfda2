package payment

import (
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func signedPayload(t *testing.T, payload string) (string, []byte) {
	t.Helper()
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testSecret,
	})
	return signed.Header, signed.Payload
}

const completedEvent = `{
  "id": "evt_1",
  "object": "event",
  "type": "checkout.session.completed",
  "api_version": "2020-08-27",
  "data": {
    "object": {
      "id": "cs_test_1",
      "object": "checkout.session",
      "url": "https://checkout.example/cs_test_1",
      "payment_status": "paid",
      "metadata": {"job_id": "job-1", "is_featured": "true", "is_newsletter_featured": "false"}
    }
  }
}`

func TestVerifyEvent_CheckoutCompleted(t *testing.T) {
	header, body := signedPayload(t, completedEvent)

	evt, err := verifyEvent(body, header, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "evt_1", evt.ID)
	assert.Equal(t, EventCheckoutCompleted, evt.Type)
	require.NotNil(t, evt.Session)
	assert.Equal(t, "cs_test_1", evt.Session.ID)
	assert.Equal(t, "paid", evt.Session.PaymentStatus)
	assert.Equal(t, Metadata{JobID: "job-1", IsFeatured: true}, evt.Session.Metadata)
}

func TestVerifyEvent_OtherTypeHasNoSession(t *testing.T) {
	header, body := signedPayload(t, `{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)

	evt, err := verifyEvent(body, header, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "customer.created", evt.Type)
	assert.Nil(t, evt.Session)
}

func TestVerifyEvent_MissingSignature(t *testing.T) {
	_, err := verifyEvent([]byte(completedEvent), "", testSecret)
	assert.ErrorIs(t, err, ErrMissingSignature)
}

func TestVerifyEvent_TamperedBody(t *testing.T) {
	header, _ := signedPayload(t, completedEvent)
	tampered := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"metadata":{"job_id":"other"}}}}`)

	_, err := verifyEvent(tampered, header, testSecret)
	assert.True(t, errors.Is(err, ErrInvalidSignature))
}

func TestVerifyEvent_WrongSecret(t *testing.T) {
	header, body := signedPayload(t, completedEvent)

	_, err := verifyEvent(body, header, "whsec_other")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestBuildSessionParams(t *testing.T) {
	params := buildSessionParams(SessionRequest{
		Currency: "usd",
		LineItems: []LineItem{
			{Name: "Job Listing (30 days)", Description: "Rep at Acme", UnitAmount: 19900, Quantity: 1},
			{Name: "Featured on Homepage (30 days)", UnitAmount: 20000},
		},
		SuccessURL:    "https://site/post-job/success?session_id=" + SessionIDPlaceholder,
		CancelURL:     "https://site/post-job?canceled=true",
		CustomerEmail: "a@b.com",
		Metadata:      Metadata{JobID: "job-1", IsNewsletterFeatured: true},
	})

	assert.Equal(t, []*string{stripe.String("card")}, params.PaymentMethodTypes)
	assert.Equal(t, "payment", *params.Mode)
	require.Len(t, params.LineItems, 2)
	assert.Equal(t, int64(19900), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "Rep at Acme", *params.LineItems[0].PriceData.ProductData.Description)
	assert.Nil(t, params.LineItems[1].PriceData.ProductData.Description)
	assert.Equal(t, int64(1), *params.LineItems[1].Quantity)
	assert.Equal(t, "usd", *params.LineItems[1].PriceData.Currency)
	assert.Equal(t, "a@b.com", *params.CustomerEmail)
	assert.Contains(t, *params.SuccessURL, "{CHECKOUT_SESSION_ID}")
	assert.Equal(t, "job-1", params.Metadata["job_id"])
	assert.Equal(t, "false", params.Metadata["is_featured"])
	assert.Equal(t, "true", params.Metadata["is_newsletter_featured"])
}

func TestNewStripeGateway_RequiresSecrets(t *testing.T) {
	_, err := NewStripeGateway("", "whsec")
	assert.Error(t, err)

	_, err = NewStripeGateway("sk_test", "")
	assert.Error(t, err)

	g, err := NewStripeGateway("sk_test", "whsec")
	require.NoError(t, err)
	assert.NotNil(t, g)
}
