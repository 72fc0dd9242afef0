package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eyecare/clinic/internal/platform/search"
)

var (
	ErrNotFound   = errors.New("patient not found")
	ErrValidation = errors.New("invalid patient")
)

// VisitPurger removes the visits of a deleted patient. The PostgreSQL schema
// cascades on its own; the memory store needs this hook.
type VisitPurger interface {
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
}

type Service struct {
	patients Repository
	purger   VisitPurger
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(patients Repository, logger zerolog.Logger) *Service {
	return &Service{
		patients: patients,
		log:      logger.With().Str("component", "patient").Logger(),
		now:      time.Now,
	}
}

// SetVisitPurger attaches the hook called after a patient is deleted.
func (s *Service) SetVisitPurger(p VisitPurger) {
	s.purger = p
}

// SetClock replaces the service clock. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

var validGenders = map[string]bool{
	GenderMale: true, GenderFemale: true, GenderOther: true,
}

func normalize(p *Patient) {
	p.Name = strings.TrimSpace(p.Name)
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.Address = strings.TrimSpace(p.Address)
	p.Status = strings.TrimSpace(p.Status)
}

func validate(p *Patient) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case p.Age < 1 || p.Age > 120:
		return fmt.Errorf("%w: age must be between 1 and 120", ErrValidation)
	case !validGenders[p.Gender]:
		return fmt.Errorf("%w: gender must be male, female or other", ErrValidation)
	case p.Mobile == "":
		return fmt.Errorf("%w: mobile is required", ErrValidation)
	case p.Address == "":
		return fmt.Errorf("%w: address is required", ErrValidation)
	}
	return nil
}

func (s *Service) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

// Register validates and stores a new patient. Identity, registration date
// and visit statistics are always assigned here.
func (s *Service) Register(ctx context.Context, p *Patient) error {
	normalize(p)
	if err := validate(p); err != nil {
		return err
	}
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = StatusActive
	}
	p.RegistrationDate = s.today()
	p.LastVisit = nil
	p.TotalVisits = 0

	if err := s.patients.Create(ctx, p); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	s.log.Info().Str("patient_id", p.ID.String()).Msg("patient registered")
	return nil
}

// Import stores a patient as given, keeping its id, dates and statistics.
// Used for seeding.
func (s *Service) Import(ctx context.Context, p *Patient) error {
	normalize(p)
	if err := validate(p); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.RegistrationDate.IsZero() {
		p.RegistrationDate = s.today()
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// Update replaces the editable fields of an existing patient. Registration
// date and visit statistics are kept from the stored record.
func (s *Service) Update(ctx context.Context, p *Patient) error {
	existing, err := s.patients.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	normalize(p)
	if err := validate(p); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = existing.Status
	}
	p.RegistrationDate = existing.RegistrationDate
	p.LastVisit = existing.LastVisit
	p.TotalVisits = existing.TotalVisits
	return s.patients.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		return err
	}
	if s.purger != nil {
		if err := s.purger.DeleteByPatient(ctx, id); err != nil {
			return fmt.Errorf("delete visits of patient %s: %w", id, err)
		}
	}
	s.log.Info().Str("patient_id", id.String()).Msg("patient deleted")
	return nil
}

// Search returns the patients whose name or mobile contains query, in
// registration order. An empty query lists everyone.
func (s *Service) Search(ctx context.Context, query string) ([]*Patient, error) {
	all, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(query, all, searchFields), nil
}

// RecordVisit bumps the visit counter and moves LastVisit forward to at.
func (s *Service) RecordVisit(ctx context.Context, id uuid.UUID, at time.Time) error {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.TotalVisits++
	if p.LastVisit == nil || at.After(*p.LastVisit) {
		p.LastVisit = &at
	}
	return s.patients.Update(ctx, p)
}
