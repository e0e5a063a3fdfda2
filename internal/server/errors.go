package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/jobboard/internal/payment"
	"github.com/jonathan/jobboard/internal/posting"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *posting.ValidationError
		persistenceErr *posting.PersistenceError
		gatewayErr     *posting.GatewayError
		signatureErr   *posting.SignatureError
		metadataErr    *posting.MissingMetadataError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr),
		errors.As(err, &signatureErr),
		errors.As(err, &metadataErr):
		return http.StatusBadRequest
	case errors.As(err, &gatewayErr):
		return http.StatusBadGateway
	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text shown to API callers. Only validation
// messages are echoed; everything else is reduced to a fixed phrase and the
// detail stays in the server log.
func PublicMessage(err error) string {
	var (
		validationErr *posting.ValidationError
		signatureErr  *posting.SignatureError
		metadataErr   *posting.MissingMetadataError
		gatewayErr    *posting.GatewayError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &signatureErr):
		if errors.Is(err, payment.ErrMissingSignature) {
			return "Missing signature"
		}
		return "Invalid signature"
	case errors.As(err, &metadataErr):
		return "Missing job_id"
	case errors.As(err, &gatewayErr):
		return "Failed to create checkout session"
	default:
		return "Internal server error"
	}
}
