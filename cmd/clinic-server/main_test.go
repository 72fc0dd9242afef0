package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eyecare/clinic/internal/config"
	"github.com/eyecare/clinic/internal/seed"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		Store:          config.StoreMemory,
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		BodyLimit:      "1M",
		ClinicName:     "EyeCare Clinic",
		ClinicAddress:  "123 Medical Street, City, State 12345",
		ClinicPhone:    "(555) 123-4567",
		FollowUpDays:   30,
	}
}

// newTestServer wires the memory store with the demo data loaded.
func newTestServer(t *testing.T) (*echo.Echo, *services) {
	t.Helper()
	cfg := testConfig()
	logger := zerolog.Nop()
	svc := newServices(cfg, nil, logger)
	if _, err := seed.Load(context.Background(), svc.patients, svc.visits, svc.templates, logger); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return newServer(cfg, nil, svc, logger), svc
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth_MemoryStore(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["store"] != "memory" || body["version"] != version {
		t.Errorf("unexpected health body %v", body)
	}
}

func TestServer_GlobalMiddleware(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/api/v1/navigation", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
	if rec.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("expected rate limit header on API routes")
	}
}

func TestServer_SearchSeededPatients(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/api/v1/patients?q=john", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 2 {
		t.Errorf("expected John Doe and Mike Johnson, got %d", body.Total)
	}
}

func TestServer_VisitFlow(t *testing.T) {
	e, svc := newTestServer(t)
	patientID := seed.ID("patient", 2).String()

	rec := do(e, http.MethodPost, "/api/v1/visits", `{
		"patient_id": "`+patientID+`",
		"type": "consultation",
		"consultation": {"diagnosis": "Routine check", "fee": "150", "doctor": "Dr. Smith"}
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Amount != 150 {
		t.Errorf("expected amount 150, got %v", created.Amount)
	}

	p, err := svc.patients.Get(context.Background(), seed.ID("patient", 2))
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	if p.TotalVisits != 4 {
		t.Errorf("expected visit count to move from 3 to 4, got %d", p.TotalVisits)
	}

	rec = do(e, http.MethodGet, "/api/v1/visits/"+created.ID+"/bill", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected bill 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Jane Smith") {
		t.Error("expected bill to name the patient")
	}

	rec = do(e, http.MethodGet, "/api/v1/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected dashboard 200, got %d", rec.Code)
	}
	var stats struct {
		TodayVisits int `json:"today_visits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TodayVisits != 1 {
		t.Errorf("expected 1 visit today, got %d", stats.TodayVisits)
	}
}

func TestServer_DeletePatientPurgesVisits(t *testing.T) {
	e, svc := newTestServer(t)
	john := seed.ID("patient", 1)

	rec := do(e, http.MethodDelete, "/api/v1/patients/"+john.String(), "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	all, err := svc.visits.List(context.Background())
	if err != nil {
		t.Fatalf("list visits: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected seeded visits to be purged with their patient, got %d", len(all))
	}
}

func TestServer_ReportsUseDomainData(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/api/v1/reports/measures/revenue-by-type/evaluate", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Results) != 3 {
		t.Errorf("expected one group per seeded visit type, got %d", len(report.Results))
	}

	rec = do(e, http.MethodGet, "/api/v1/reports/revenue.xlsx", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected xlsx 200, got %d", rec.Code)
	}
}

func TestReportSource_PatientNames(t *testing.T) {
	_, svc := newTestServer(t)
	src := reportSource{patients: svc.patients, visits: svc.visits}
	records, err := src.VisitRecords(context.Background(), seed.Visits()[2].Date, seed.Visits()[0].Date.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("VisitRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 visits, got %d", len(records))
	}
	for _, r := range records {
		if r.PatientName != "John Doe" {
			t.Errorf("expected John Doe, got %q", r.PatientName)
		}
	}
}
