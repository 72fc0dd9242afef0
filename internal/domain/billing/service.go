package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/visit"
)

type PatientLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type VisitLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*visit.Visit, error)
	Preview(v *visit.Visit) error
}

type Service struct {
	patients     PatientLookup
	visits       VisitLookup
	clinic       Clinic
	followUpDays int
	now          func() time.Time
}

func NewService(patients PatientLookup, visits VisitLookup, clinic Clinic, followUpDays int) *Service {
	return &Service{
		patients:     patients,
		visits:       visits,
		clinic:       clinic,
		followUpDays: followUpDays,
		now:          time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ForVisit renders the bill of a stored visit.
func (s *Service) ForVisit(ctx context.Context, visitID uuid.UUID) (*Bill, error) {
	v, err := s.visits.Get(ctx, visitID)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.Get(ctx, v.PatientID)
	if err != nil {
		return nil, err
	}
	return Render(s.clinic, p, v, s.now(), s.followUpDays), nil
}

// Preview renders the bill for a visit form that has not been saved yet.
func (s *Service) Preview(ctx context.Context, v *visit.Visit) (*Bill, error) {
	if err := s.visits.Preview(v); err != nil {
		return nil, err
	}
	p, err := s.patients.Get(ctx, v.PatientID)
	if err != nil {
		return nil, err
	}
	return Render(s.clinic, p, v, s.now(), s.followUpDays), nil
}
