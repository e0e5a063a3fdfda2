// Package posting implements the paid job submission workflow and the
// payment confirmation that activates a listing.
//
// Listing status graph:
//
//	pending_payment ──► active ──► expired
//
// Only pending_payment → active is performed here. Re-applying active → active
// is tolerated so a redelivered confirmation is harmless. expired is terminal.
package posting

import (
	"fmt"

	"github.com/jonathan/jobboard/internal/db"
)

// Status mirrors jobs.status.
type Status string

const (
	StatusPendingPayment Status = db.JobStatusPendingPayment
	StatusActive         Status = db.JobStatusActive
	StatusExpired        Status = db.JobStatusExpired
)

var validTransitions = map[Status][]Status{
	StatusPendingPayment: {StatusActive},
	StatusActive:         {StatusExpired},
}

// ParseStatus converts a stored status string, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPendingPayment, StatusActive, StatusExpired:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// IsTransitionAllowed reports whether from → to is a valid move.
func IsTransitionAllowed(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanActivate reports whether a confirmation may (re)apply the active state.
func CanActivate(s Status) bool {
	return s == StatusActive || IsTransitionAllowed(s, StatusActive)
}

// IsVisible reports whether a listing in this state appears in public queries.
func IsVisible(s Status) bool { return s == StatusActive }
