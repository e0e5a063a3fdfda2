package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/jobboard/internal/logger"
	"github.com/jonathan/jobboard/internal/posting"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

// handleCheckout creates a pending listing and returns the hosted checkout URL.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Request body too large or unreadable")
		return
	}

	if err := s.checkout.Validate(body); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			s.errorResponse(w, http.StatusBadRequest, verr.Summary())
			return
		}
		s.log.Error("checkout schema validation failed", logger.Err(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var req types.CheckoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := s.submitter.Submit(r.Context(), &req)
	if err != nil {
		var perr *posting.PersistenceError
		if errors.As(err, &perr) {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to create job listing")
			return
		}
		s.errorResponse(w, HTTPStatus(err), PublicMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, types.CheckoutResponse{SessionURL: result.RedirectURL})
}

// handleCheckoutSuccess reports which listing a finished checkout was for.
// It always answers 200; unknown sessions yield an empty object.
func (s *Server) handleCheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.jsonResponse(w, http.StatusOK, types.CheckoutSuccess{})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.submitter.LookupSuccess(r.Context(), sessionID))
}
