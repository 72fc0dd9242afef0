package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/visit"
)

var fixedNow = time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	patients := patient.NewService(patient.NewMemoryRepo(), zerolog.Nop())
	visits := visit.NewService(visit.NewMemoryRepo(), patients, zerolog.Nop())

	john := &patient.Patient{Name: "John Doe", Age: 45, Gender: "male", Mobile: "1", Address: "a"}
	jane := &patient.Patient{Name: "Jane Smith", Age: 32, Gender: "female", Mobile: "2", Address: "b"}
	for _, p := range []*patient.Patient{john, jane} {
		if err := patients.Register(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	at := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC) }
	for _, v := range []*visit.Visit{
		{PatientID: john.ID, Type: visit.TypeConsultation, Date: at(15, 10), Consultation: &visit.ConsultationPayload{Diagnosis: "Exam", Fee: "150"}},
		{PatientID: jane.ID, Type: visit.TypeMedicine, Date: at(15, 11), Medicines: []visit.MedicineLine{{Name: "Timolol", Quantity: 1, Price: 85}}},
		{PatientID: john.ID, Type: visit.TypeOptical, Date: at(10, 9), Optical: &visit.OpticalPayload{FramesCost: "120", LensesCost: "200"}},
		{PatientID: jane.ID, Type: visit.TypeConsultation, Date: time.Date(2023, 12, 20, 9, 0, 0, 0, time.UTC), Consultation: &visit.ConsultationPayload{Diagnosis: "Exam", Fee: "99"}},
	} {
		if err := visits.Import(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewService(patients, visits, "EyeCare Clinic")
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func TestService_Stats(t *testing.T) {
	svc := newTestService(t)
	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.TotalPatients != 2 {
		t.Errorf("expected 2 patients, got %d", st.TotalPatients)
	}
	if st.TodayVisits != 2 {
		t.Errorf("expected 2 visits today, got %d", st.TodayVisits)
	}
	if st.TodayRevenue != 235 {
		t.Errorf("expected today revenue 235, got %v", st.TodayRevenue)
	}
	if st.MonthlyRevenue != 555 {
		t.Errorf("expected monthly revenue 555, got %v", st.MonthlyRevenue)
	}
	if st.MonthlyEyeExams != 2 {
		t.Errorf("expected 2 eye exams this month, got %d", st.MonthlyEyeExams)
	}
	want := Breakdown{Consultations: 1, MedicineBills: 1}
	if st.TodayBreakdown != want {
		t.Errorf("breakdown = %+v, want %+v", st.TodayBreakdown, want)
	}
	if len(st.RecentVisits) != 2 || st.RecentVisits[0].PatientName != "Jane Smith" {
		t.Errorf("expected newest visit first, got %+v", st.RecentVisits)
	}
	if st.RecentVisits[1].TypeLabel != "Consultation" {
		t.Errorf("unexpected label %q", st.RecentVisits[1].TypeLabel)
	}
}

func TestService_Navigation(t *testing.T) {
	svc := newTestService(t)
	nav := svc.Navigation()
	if nav.Footer != "© 2024 EyeCare Clinic" {
		t.Errorf("unexpected footer %q", nav.Footer)
	}
	if nav.Items[0].Path != "/" {
		t.Errorf("dashboard should come first, got %+v", nav.Items[0])
	}
	last := nav.Items[len(nav.Items)-1]
	if last.Title != "Reports" || !last.Disabled || last.Badge != "Soon" {
		t.Errorf("reports entry should be disabled with a Soon badge, got %+v", last)
	}
}

func TestHandler_GetDashboard(t *testing.T) {
	h := NewHandler(newTestService(t))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := h.GetDashboard(c); err != nil {
		t.Fatal(err)
	}
	var st Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if st.TodayVisits != 2 {
		t.Errorf("expected 2, got %d", st.TodayVisits)
	}
}
