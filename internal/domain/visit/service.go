package visit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eyecare/clinic/internal/domain/patient"
)

var (
	ErrNotFound   = errors.New("visit not found")
	ErrValidation = errors.New("invalid visit")
)

// PatientDirectory is the part of the patient service visits depend on.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	RecordVisit(ctx context.Context, id uuid.UUID, at time.Time) error
}

// TxRunner runs fn atomically. The memory store has no transactions and uses
// a pass-through runner.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

func noTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type Service struct {
	visits   Repository
	patients PatientDirectory
	catalog  Catalog
	inTx     TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

func NewService(visits Repository, patients PatientDirectory, logger zerolog.Logger) *Service {
	return &Service{
		visits:   visits,
		patients: patients,
		catalog:  DefaultCatalog(),
		inTx:     noTx,
		log:      logger.With().Str("component", "visit").Logger(),
		now:      time.Now,
	}
}

// SetTxRunner makes RecordVisit store the visit and update the patient in
// one transaction.
func (s *Service) SetTxRunner(run TxRunner) {
	s.inTx = run
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Catalog() Catalog {
	return s.catalog
}

// prepare validates v, drops payloads that do not match its type and
// recomputes the amount. Client supplied amounts are ignored.
func prepare(v *Visit) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	v.Type = Type(strings.ToLower(strings.TrimSpace(string(v.Type))))
	if !v.Type.Valid() {
		return fmt.Errorf("%w: type must be consultation, medicine or optical", ErrValidation)
	}

	switch v.Type {
	case TypeConsultation:
		if v.Consultation == nil || strings.TrimSpace(v.Consultation.Diagnosis) == "" {
			return fmt.Errorf("%w: consultation diagnosis is required", ErrValidation)
		}
		v.Medicines, v.Optical = nil, nil
		if v.Doctor == "" {
			v.Doctor = v.Consultation.Doctor
		}
		if v.Diagnosis == "" {
			v.Diagnosis = v.Consultation.Diagnosis
		}
	case TypeMedicine:
		if len(v.Medicines) == 0 {
			return fmt.Errorf("%w: at least one medicine is required", ErrValidation)
		}
		for i, l := range v.Medicines {
			if strings.TrimSpace(l.Name) == "" {
				return fmt.Errorf("%w: medicine %d: name is required", ErrValidation, i+1)
			}
			if err := checkLine(i, l); err != nil {
				return err
			}
			if l.ID == "" {
				v.Medicines[i].ID = fmt.Sprint(i + 1)
			}
		}
		v.Consultation, v.Optical = nil, nil
	case TypeOptical:
		if v.Optical == nil {
			v.Optical = &OpticalPayload{}
		}
		if len(v.Optical.Prescriptions) == 0 {
			v.Optical.Prescriptions = DefaultOpticalRows()
		}
		for _, row := range v.Optical.Prescriptions {
			if row.Eye != EyeRight && row.Eye != EyeLeft {
				return fmt.Errorf("%w: eye must be OD or OS, got %q", ErrValidation, row.Eye)
			}
		}
		v.Consultation, v.Medicines = nil, nil
		if v.Diagnosis == "" {
			v.Diagnosis = v.Optical.Remarks
		}
	}

	if v.Status == "" {
		v.Status = StatusCompleted
	}
	v.Amount = CalculateTotal(v)
	return nil
}

// checkLine rejects quantities and prices no medicine line may carry.
func checkLine(i int, l MedicineLine) error {
	switch {
	case l.Quantity < 1:
		return fmt.Errorf("%w: medicine %d: quantity must be at least 1", ErrValidation, i+1)
	case l.Price < 0:
		return fmt.Errorf("%w: medicine %d: price must not be negative", ErrValidation, i+1)
	}
	return nil
}

// RecordVisit stores a new visit dated now and updates the patient's visit
// statistics.
func (s *Service) RecordVisit(ctx context.Context, v *Visit) error {
	if err := prepare(v); err != nil {
		return err
	}
	if _, err := s.patients.Get(ctx, v.PatientID); err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return fmt.Errorf("%w: unknown patient %s", ErrValidation, v.PatientID)
		}
		return err
	}
	v.ID = uuid.New()
	v.Date = s.now()

	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.visits.Create(ctx, v); err != nil {
			return fmt.Errorf("create visit: %w", err)
		}
		return s.patients.RecordVisit(ctx, v.PatientID, v.Date)
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Str("visit_id", v.ID.String()).
		Str("patient_id", v.PatientID.String()).
		Str("type", string(v.Type)).
		Float64("amount", v.Amount).
		Msg("visit recorded")
	return nil
}

// Import stores a historical visit as given, keeping its id and date. The
// patient's statistics are left alone.
func (s *Service) Import(ctx context.Context, v *Visit) error {
	if err := prepare(v); err != nil {
		return err
	}
	if v.Date.IsZero() {
		v.Date = s.now()
	}
	return s.visits.Create(ctx, v)
}

// Preview validates v and fills in its amount without storing it.
func (s *Service) Preview(v *Visit) error {
	if err := prepare(v); err != nil {
		return err
	}
	if v.Date.IsZero() {
		v.Date = s.now()
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

// ListByPatient returns a patient's visits, newest first.
func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Visit, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	items, err := s.visits.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return items, nil
}

func (s *Service) ListBetween(ctx context.Context, from, to time.Time) ([]*Visit, error) {
	return s.visits.ListBetween(ctx, from, to)
}

func (s *Service) List(ctx context.Context) ([]*Visit, error) {
	return s.visits.List(ctx)
}

// DeleteByPatient drops every visit of a patient. It satisfies
// patient.VisitPurger.
func (s *Service) DeleteByPatient(ctx context.Context, patientID uuid.UUID) error {
	return s.visits.DeleteByPatient(ctx, patientID)
}

// Summary is the patient detail view: demographics, payment totals and the
// visit history.
type Summary struct {
	Patient     *patient.Patient `json:"patient"`
	VisitCount  int              `json:"visit_count"`
	TotalPaid   float64          `json:"total_paid"`
	Outstanding float64          `json:"outstanding"`
	Visits      []*Visit         `json:"visits"`
}

// Summary builds the detail view for a patient. Bills are settled at the
// counter so nothing is ever outstanding.
func (s *Service) Summary(ctx context.Context, patientID uuid.UUID) (*Summary, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	visits, err := s.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Patient: p, VisitCount: len(visits), Visits: visits}
	if sum.Visits == nil {
		sum.Visits = []*Visit{}
	}
	for _, v := range visits {
		sum.TotalPaid += v.Amount
	}
	sum.TotalPaid = roundCents(sum.TotalPaid)
	return sum, nil
}
