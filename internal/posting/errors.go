package posting

import (
	"fmt"
	"strings"
)

// ValidationError indicates the submitted form is incomplete or malformed.
// Its message is safe to show to the poster.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// PersistenceError indicates the record store failed or rejected a write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// GatewayError indicates the payment provider could not open a checkout session.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// SignatureError indicates a webhook delivery failed authentication.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("webhook signature rejected: %v", e.Err)
}

func (e *SignatureError) Unwrap() error { return e.Err }

// MissingMetadataError indicates a verified checkout event lacks a usable job reference.
type MissingMetadataError struct {
	Key   string
	Value string
}

func (e *MissingMetadataError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("missing %s in session metadata", e.Key)
	}
	return fmt.Sprintf("invalid %s in session metadata: %q", e.Key, e.Value)
}
