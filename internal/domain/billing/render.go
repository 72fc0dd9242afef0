package billing

import (
	"fmt"
	"time"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/visit"
)

// BillNumber is the last six digits of now in Unix milliseconds.
func BillNumber(now time.Time) string {
	return fmt.Sprintf("%06d", now.UnixMilli()%1_000_000)
}

// Render builds the bill for v. It has no side effects; the total is
// recomputed from the payload rather than taken from v.Amount.
func Render(clinic Clinic, p *patient.Patient, v *visit.Visit, now time.Time, followUpDays int) *Bill {
	b := &Bill{
		Clinic:        clinic,
		Number:        BillNumber(now),
		Date:          now,
		VisitType:     v.Type,
		Doctor:        v.Doctor,
		Diagnosis:     v.Diagnosis,
		Items:         []LineItem{},
		Total:         visit.CalculateTotal(v),
		PaymentStatus: PaymentStatusPaid,
		NextFollowUp:  now.AddDate(0, 0, followUpDays),
	}
	if p != nil {
		b.Patient = PatientInfo{Name: p.Name, Mobile: p.Mobile}
	}

	switch v.Type {
	case visit.TypeConsultation:
		if c := v.Consultation; c != nil {
			b.Items = append(b.Items, LineItem{
				Description: "Consultation Fee",
				Amount:      visit.ConsultationTotal(c),
			})
			if c.Doctor != "" {
				b.Doctor = c.Doctor
			}
			if c.Diagnosis != "" {
				b.Diagnosis = c.Diagnosis
			}
		}
	case visit.TypeMedicine:
		for _, l := range v.Medicines {
			b.Items = append(b.Items, LineItem{
				Description: l.Name,
				Detail:      l.Dosage,
				Quantity:    l.Quantity,
				UnitPrice:   l.Price,
				Amount:      l.Subtotal(),
			})
		}
	case visit.TypeOptical:
		if o := v.Optical; o != nil {
			b.Prescriptions = o.Prescriptions
			b.LensType = o.LensType
			b.Remarks = o.Remarks
			frames, lenses := o.Costs()
			b.Items = append(b.Items,
				LineItem{Description: "Frames Cost", Amount: frames},
				LineItem{Description: "Lenses Cost", Amount: lenses},
			)
		}
	}
	return b
}
