package posting

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/db"
)

// Store is the subset of the record store the workflow needs. *db.DB satisfies it.
type Store interface {
	CreatePendingListing(ctx context.Context, company db.CompanyCreateInput, job db.JobCreateInput) (*db.Company, *db.Job, error)
	SetJobSessionID(ctx context.Context, jobID uuid.UUID, sessionID string) error
	ActivateJob(ctx context.Context, jobID uuid.UUID, input db.ActivateJobInput) (int64, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*db.JobWithCompany, error)
}

var _ Store = (*db.DB)(nil)
