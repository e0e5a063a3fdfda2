package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/jobboard/internal/posting"
)

const stripeSignatureHeader = "Stripe-Signature"

// handleStripeWebhook verifies and applies a payment provider event.
// A 2xx tells the provider to stop redelivering.
func (s *Server) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get(stripeSignatureHeader)
	if signature == "" {
		s.errorResponse(w, http.StatusBadRequest, "Missing signature")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Request body too large or unreadable")
		return
	}

	if _, err := s.confirmer.HandleEvent(r.Context(), body, signature); err != nil {
		var perr *posting.PersistenceError
		if errors.As(err, &perr) {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to activate job")
			return
		}
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"received": true})
}
