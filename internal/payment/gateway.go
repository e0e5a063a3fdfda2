// Package payment adapts the hosted checkout provider behind a small interface.
package payment

import (
	"context"
	"errors"
)

// SessionIDPlaceholder is substituted by the provider with the real session id
// when redirecting to the success URL.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// EventCheckoutCompleted is the only event kind that activates a listing.
const EventCheckoutCompleted = "checkout.session.completed"

var (
	// ErrMissingSignature is returned when an event arrives without a signature header.
	ErrMissingSignature = errors.New("missing signature header")
	// ErrInvalidSignature is returned when the signature does not match the body.
	ErrInvalidSignature = errors.New("invalid signature")
)

// Gateway is the hosted checkout provider.
type Gateway interface {
	// CreateCheckoutSession opens a hosted payment page for the given cart.
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	// GetSession looks up a previously created session.
	GetSession(ctx context.Context, id string) (*Session, error)
	// VerifyEvent authenticates a webhook body against its signature header and decodes it.
	VerifyEvent(body []byte, signature string) (*Event, error)
}

// LineItem is one priced entry of the cart. UnitAmount is in minor currency units.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// SessionRequest describes the checkout to open.
type SessionRequest struct {
	Currency      string
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      Metadata
}

// Session is a checkout attempt as reported by the provider.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	Metadata      Metadata
}

// Event is a verified webhook delivery. Session is set only for checkout
// session events.
type Event struct {
	ID      string
	Type    string
	Session *Session
}
