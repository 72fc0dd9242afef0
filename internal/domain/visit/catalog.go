package visit

// Option is a value/label pair for a select box.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Catalog holds the static lists the visit form offers.
type Catalog struct {
	VisitTypes []Option `json:"visit_types"`
	Doctors    []string `json:"doctors"`
	Medicines  []string `json:"medicines"`
	LensTypes  []Option `json:"lens_types"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		VisitTypes: []Option{
			{Value: string(TypeConsultation), Label: "Consultation"},
			{Value: string(TypeMedicine), Label: "Medicine Billing"},
			{Value: string(TypeOptical), Label: "Optical Prescription"},
		},
		Doctors: []string{"Dr. Smith", "Dr. Johnson", "Dr. Wilson", "Dr. Brown"},
		Medicines: []string{
			"Artificial Tears",
			"Tobramycin Eye Drops",
			"Prednisolone Eye Drops",
			"Cyclosporine",
			"Latanoprost",
			"Timolol",
			"Olopatadine",
		},
		LensTypes: []Option{
			{Value: "single-vision", Label: "Single Vision"},
			{Value: "bifocal", Label: "Bifocal"},
			{Value: "progressive", Label: "Progressive"},
			{Value: "reading", Label: "Reading"},
		},
	}
}
