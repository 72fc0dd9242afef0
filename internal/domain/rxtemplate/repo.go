package rxtemplate

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores templates in creation order. Unknown ids yield
// ErrNotFound.
type Repository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*Template, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Template, error)
}
