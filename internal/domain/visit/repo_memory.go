package visit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu     sync.RWMutex
	visits []*Visit
}

func NewMemoryRepo() Repository {
	return &memoryRepo{}
}

func (r *memoryRepo) Create(_ context.Context, v *Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.visits = append(r.visits, v.clone())
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.visits {
		if v.ID == id {
			return v.clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Visit, error) {
	return r.filter(func(v *Visit) bool { return v.PatientID == patientID }), nil
}

func (r *memoryRepo) ListBetween(_ context.Context, from, to time.Time) ([]*Visit, error) {
	return r.filter(func(v *Visit) bool {
		return !v.Date.Before(from) && v.Date.Before(to)
	}), nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Visit, error) {
	return r.filter(func(*Visit) bool { return true }), nil
}

func (r *memoryRepo) DeleteByPatient(_ context.Context, patientID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.visits[:0]
	for _, v := range r.visits {
		if v.PatientID != patientID {
			kept = append(kept, v)
		}
	}
	for i := len(kept); i < len(r.visits); i++ {
		r.visits[i] = nil
	}
	r.visits = kept
	return nil
}

func (r *memoryRepo) filter(keep func(*Visit) bool) []*Visit {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Visit
	for _, v := range r.visits {
		if keep(v) {
			out = append(out, v.clone())
		}
	}
	return out
}
