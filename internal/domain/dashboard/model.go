package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/eyecare/clinic/internal/domain/visit"
)

type NavItem struct {
	Title    string `json:"title"`
	Path     string `json:"path"`
	Icon     string `json:"icon"`
	Disabled bool   `json:"disabled,omitempty"`
	Badge    string `json:"badge,omitempty"`
}

// Navigation is the layout shell: clinic branding, menu and footer.
type Navigation struct {
	ClinicName string    `json:"clinic_name"`
	Tagline    string    `json:"tagline"`
	Items      []NavItem `json:"items"`
	Footer     string    `json:"footer"`
}

type RecentVisit struct {
	VisitID     uuid.UUID  `json:"visit_id"`
	PatientID   uuid.UUID  `json:"patient_id"`
	PatientName string     `json:"patient_name"`
	Type        visit.Type `json:"type"`
	TypeLabel   string     `json:"type_label"`
	Time        time.Time  `json:"time"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
}

type Breakdown struct {
	Consultations int `json:"consultations"`
	MedicineBills int `json:"medicine_bills"`
	Optical       int `json:"optical_prescriptions"`
}

// Stats is everything the dashboard page shows.
type Stats struct {
	Date            time.Time     `json:"date"`
	TotalPatients   int           `json:"total_patients"`
	TodayVisits     int           `json:"today_visits"`
	MonthlyRevenue  float64       `json:"monthly_revenue"`
	MonthlyEyeExams int           `json:"monthly_eye_exams"`
	RecentVisits    []RecentVisit `json:"recent_visits"`
	TodayBreakdown  Breakdown     `json:"today_breakdown"`
	TodayRevenue    float64       `json:"today_revenue"`
}
