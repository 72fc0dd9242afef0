package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/visit"
	"github.com/eyecare/clinic/internal/platform/reporting"
)

// reportSource adapts the patient and visit services to reporting.Source,
// keeping the reporting package free of domain imports.
type reportSource struct {
	patients *patient.Service
	visits   *visit.Service
}

func (s reportSource) PatientRecords(ctx context.Context) ([]reporting.PatientRecord, error) {
	patients, err := s.patients.Search(ctx, "")
	if err != nil {
		return nil, err
	}
	records := make([]reporting.PatientRecord, 0, len(patients))
	for _, p := range patients {
		records = append(records, reporting.PatientRecord{
			Status:           p.Status,
			RegistrationDate: p.RegistrationDate,
		})
	}
	return records, nil
}

func (s reportSource) VisitRecords(ctx context.Context, from, to time.Time) ([]reporting.VisitRecord, error) {
	visits, err := s.visits.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	patients, err := s.patients.Search(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.Name
	}

	records := make([]reporting.VisitRecord, 0, len(visits))
	for _, v := range visits {
		records = append(records, reporting.VisitRecord{
			ID:          v.ID.String(),
			Date:        v.Date,
			Type:        string(v.Type),
			TypeLabel:   v.Type.Label(),
			PatientName: names[v.PatientID],
			Doctor:      v.Doctor,
			Amount:      v.Amount,
		})
	}
	return records, nil
}
