package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/visit"
)

type PatientSource interface {
	Search(ctx context.Context, query string) ([]*patient.Patient, error)
}

type VisitSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]*visit.Visit, error)
}

// recentLimit caps the visit list on the dashboard.
const recentLimit = 10

type Service struct {
	patients   PatientSource
	visits     VisitSource
	clinicName string
	now        func() time.Time
}

func NewService(patients PatientSource, visits VisitSource, clinicName string) *Service {
	return &Service{patients: patients, visits: visits, clinicName: clinicName, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Navigation() Navigation {
	return Navigation{
		ClinicName: s.clinicName,
		Tagline:    "Patient Management",
		Items: []NavItem{
			{Title: "Dashboard", Path: "/", Icon: "home"},
			{Title: "Register Patient", Path: "/register-patient", Icon: "user-plus"},
			{Title: "New Visit", Path: "/new-visit", Icon: "calendar"},
			{Title: "Search Patients", Path: "/search-patients", Icon: "search"},
			{Title: "Prescription Templates", Path: "/prescription-templates", Icon: "file-text"},
			{Title: "Reports", Path: "/reports", Icon: "bar-chart", Disabled: true, Badge: "Soon"},
		},
		Footer: fmt.Sprintf("© %d %s", s.now().Year(), s.clinicName),
	}
}

// Stats computes the dashboard for the current day and month. Eye exams
// count consultations and optical prescriptions.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	patients, err := s.patients.Search(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	names := make(map[uuid.UUID]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.Name
	}

	month, err := s.visits.ListBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}

	st := &Stats{Date: dayStart, TotalPatients: len(patients), RecentVisits: []RecentVisit{}}
	var today []*visit.Visit
	for _, v := range month {
		st.MonthlyRevenue += v.Amount
		if v.Type == visit.TypeConsultation || v.Type == visit.TypeOptical {
			st.MonthlyEyeExams++
		}
		if v.Date.Before(dayStart) || !v.Date.Before(dayStart.AddDate(0, 0, 1)) {
			continue
		}
		today = append(today, v)
		st.TodayRevenue += v.Amount
		switch v.Type {
		case visit.TypeConsultation:
			st.TodayBreakdown.Consultations++
		case visit.TypeMedicine:
			st.TodayBreakdown.MedicineBills++
		case visit.TypeOptical:
			st.TodayBreakdown.Optical++
		}
	}
	st.TodayVisits = len(today)
	st.MonthlyRevenue = math.Round(st.MonthlyRevenue*100) / 100
	st.TodayRevenue = math.Round(st.TodayRevenue*100) / 100

	sort.SliceStable(today, func(i, j int) bool { return today[i].Date.After(today[j].Date) })
	for i, v := range today {
		if i == recentLimit {
			break
		}
		st.RecentVisits = append(st.RecentVisits, RecentVisit{
			VisitID:     v.ID,
			PatientID:   v.PatientID,
			PatientName: names[v.PatientID],
			Type:        v.Type,
			TypeLabel:   v.Type.Label(),
			Time:        v.Date,
			Amount:      v.Amount,
			Status:      v.Status,
		})
	}
	return st, nil
}
