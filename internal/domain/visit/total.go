package visit

import "math"

// CalculateTotal returns the billable amount for v, rounded to cents.
// Unknown or unset types and missing payloads total 0.
func CalculateTotal(v *Visit) float64 {
	switch v.Type {
	case TypeConsultation:
		return ConsultationTotal(v.Consultation)
	case TypeMedicine:
		return MedicineTotal(v.Medicines)
	case TypeOptical:
		return OpticalTotal(v.Optical)
	}
	return 0
}

func ConsultationTotal(c *ConsultationPayload) float64 {
	if c == nil {
		return 0
	}
	return roundCents(c.Fee.Value())
}

// MedicineTotal sums quantity times price over every line.
func MedicineTotal(lines []MedicineLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal()
	}
	return roundCents(sum)
}

// Costs returns the frames and lenses costs. Neither goes below 0.
func (o *OpticalPayload) Costs() (frames, lenses float64) {
	return math.Max(o.FramesCost.Value(), 0), math.Max(o.LensesCost.Value(), 0)
}

func OpticalTotal(o *OpticalPayload) float64 {
	if o == nil {
		return 0
	}
	frames, lenses := o.Costs()
	return roundCents(frames + lenses)
}
