package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores patients. List returns them in registration order.
// GetByID, Update and Delete return ErrNotFound for unknown ids.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Patient, error)
}
