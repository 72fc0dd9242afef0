package visit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository stores visits. Listings are in recording order.
type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Visit, error)
	// ListBetween returns visits dated in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*Visit, error)
	List(ctx context.Context) ([]*Visit, error)
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
}
