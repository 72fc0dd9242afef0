package rxtemplate

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu        sync.RWMutex
	templates []*Template
}

func NewMemoryRepo() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, t *Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.templates = append(r.templates, t.clone())
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.templates[i].clone(), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) Update(_ context.Context, t *Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(t.ID)
	if i < 0 {
		return ErrNotFound
	}
	r.templates[i] = t.clone()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.templates = append(r.templates[:i], r.templates[i+1:]...)
	return nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Template, len(r.templates))
	for i, t := range r.templates {
		out[i] = t.clone()
	}
	return out, nil
}

func (r *memoryRepo) indexOf(id uuid.UUID) int {
	for i, t := range r.templates {
		if t.ID == id {
			return i
		}
	}
	return -1
}
