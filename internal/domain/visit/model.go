package visit

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeMedicine     Type = "medicine"
	TypeOptical      Type = "optical"
)

func (t Type) Valid() bool {
	switch t {
	case TypeConsultation, TypeMedicine, TypeOptical:
		return true
	}
	return false
}

// Label is the human name shown in lists and on bills.
func (t Type) Label() string {
	switch t {
	case TypeConsultation:
		return "Consultation"
	case TypeMedicine:
		return "Medicine"
	case TypeOptical:
		return "Optical Prescription"
	}
	return string(t)
}

const StatusCompleted = "Completed"

const (
	EyeRight = "OD"
	EyeLeft  = "OS"
)

type ConsultationPayload struct {
	Diagnosis string  `json:"diagnosis"`
	Fee       Decimal `json:"fee"`
	Doctor    string  `json:"doctor"`
}

type MedicineLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Dosage   string  `json:"dosage"`
	Price    float64 `json:"price"`
}

func (l MedicineLine) Subtotal() float64 {
	return float64(l.Quantity) * l.Price
}

// OpticalRow is one eye of a spectacle prescription. Values are free text.
type OpticalRow struct {
	Eye      string `json:"eye"`
	Sph      string `json:"sph"`
	Cyl      string `json:"cyl"`
	Axis     string `json:"axis"`
	Add      string `json:"add"`
	PD       string `json:"pd"`
	Distance string `json:"distance"`
}

type OpticalPayload struct {
	Prescriptions []OpticalRow `json:"prescriptions"`
	LensType      string       `json:"lens_type"`
	Remarks       string       `json:"remarks"`
	FramesCost    Decimal      `json:"frames_cost"`
	LensesCost    Decimal      `json:"lenses_cost"`
}

// Visit maps to the visit table. Exactly one of Consultation, Medicines and
// Optical is set, matching Type. Amount is always computed server side.
type Visit struct {
	ID           uuid.UUID            `json:"id"`
	PatientID    uuid.UUID            `json:"patient_id"`
	Type         Type                 `json:"type"`
	Date         time.Time            `json:"date"`
	Doctor       string               `json:"doctor"`
	Diagnosis    string               `json:"diagnosis"`
	Amount       float64              `json:"amount"`
	Status       string               `json:"status"`
	Consultation *ConsultationPayload `json:"consultation,omitempty"`
	Medicines    []MedicineLine       `json:"medicines,omitempty"`
	Optical      *OpticalPayload      `json:"optical,omitempty"`
}

func (v *Visit) clone() *Visit {
	cp := *v
	if v.Consultation != nil {
		c := *v.Consultation
		cp.Consultation = &c
	}
	if v.Medicines != nil {
		cp.Medicines = append([]MedicineLine(nil), v.Medicines...)
	}
	if v.Optical != nil {
		o := *v.Optical
		o.Prescriptions = append([]OpticalRow(nil), v.Optical.Prescriptions...)
		cp.Optical = &o
	}
	return &cp
}

// DefaultOpticalRows returns the blank right and left eye rows the form
// starts with.
func DefaultOpticalRows() []OpticalRow {
	return []OpticalRow{{Eye: EyeRight}, {Eye: EyeLeft}}
}
