package patient

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu       sync.RWMutex
	patients []*Patient
}

// NewMemoryRepo returns the default in-process store. Contents are lost on
// restart.
func NewMemoryRepo() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients = append(r.patients, p.clone())
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.patients[i].clone(), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) Update(_ context.Context, p *Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.patients[i] = p.clone()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.patients = append(r.patients[:i], r.patients[i+1:]...)
	return nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Patient, len(r.patients))
	for i, p := range r.patients {
		out[i] = p.clone()
	}
	return out, nil
}

func (r *memoryRepo) indexOf(id uuid.UUID) int {
	for i, p := range r.patients {
		if p.ID == id {
			return i
		}
	}
	return -1
}
