package billing

import (
	"fmt"
	"time"

	"github.com/eyecare/clinic/internal/domain/visit"
)

// PaymentStatusPaid is printed on every bill; payment is taken at the desk.
const PaymentStatusPaid = "PAID"

type Clinic struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type PatientInfo struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// LineItem is one priced row of a bill. Quantity and UnitPrice are only set
// for dispensed medicines.
type LineItem struct {
	Description string  `json:"description"`
	Detail      string  `json:"detail,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	UnitPrice   float64 `json:"unit_price,omitempty"`
	Amount      float64 `json:"amount"`
}

// Bill is the printable receipt for one visit.
type Bill struct {
	Clinic        Clinic             `json:"clinic"`
	Number        string             `json:"number"`
	Date          time.Time          `json:"date"`
	Patient       PatientInfo        `json:"patient"`
	VisitType     visit.Type         `json:"visit_type"`
	Doctor        string             `json:"doctor,omitempty"`
	Diagnosis     string             `json:"diagnosis,omitempty"`
	Items         []LineItem         `json:"items"`
	Prescriptions []visit.OpticalRow `json:"prescriptions,omitempty"`
	LensType      string             `json:"lens_type,omitempty"`
	Remarks       string             `json:"remarks,omitempty"`
	Total         float64            `json:"total"`
	PaymentStatus string             `json:"payment_status"`
	NextFollowUp  time.Time          `json:"next_follow_up"`
}

// FormatAmount renders money with two decimals.
func FormatAmount(f float64) string {
	return fmt.Sprintf("$%.2f", f)
}

// FormatDate renders a date the way the front desk writes it.
func FormatDate(t time.Time) string {
	return t.Format("01/02/2006")
}
