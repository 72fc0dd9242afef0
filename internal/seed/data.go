package seed

import (
	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/rxtemplate"
	"github.com/eyecare/clinic/internal/domain/visit"
)

// Patients returns the demo patient directory. Visit statistics are carried
// over from the clinic's old records and are not derived from Visits.
func Patients() []*patient.Patient {
	return []*patient.Patient{
		{
			ID:               ID("patient", 1),
			Name:             "John Doe",
			Age:              45,
			Gender:           patient.GenderMale,
			Mobile:           "+1 (555) 123-4567",
			Address:          "123 Main St, City, State 12345",
			Status:           patient.StatusActive,
			RegistrationDate: date("2023-06-15"),
			LastVisit:        datePtr("2024-01-15"),
			TotalVisits:      5,
		},
		{
			ID:               ID("patient", 2),
			Name:             "Jane Smith",
			Age:              32,
			Gender:           patient.GenderFemale,
			Mobile:           "+1 (555) 987-6543",
			Address:          "456 Oak Ave, City, State",
			Status:           patient.StatusActive,
			RegistrationDate: date("2023-08-02"),
			LastVisit:        datePtr("2024-01-14"),
			TotalVisits:      3,
		},
		{
			ID:               ID("patient", 3),
			Name:             "Mike Johnson",
			Age:              67,
			Gender:           patient.GenderMale,
			Mobile:           "+1 (555) 456-7890",
			Address:          "789 Pine Rd, City, State",
			Status:           patient.StatusFollowUp,
			RegistrationDate: date("2022-11-20"),
			LastVisit:        datePtr("2024-01-13"),
			TotalVisits:      8,
		},
		{
			ID:               ID("patient", 4),
			Name:             "Sarah Wilson",
			Age:              28,
			Gender:           patient.GenderFemale,
			Mobile:           "+1 (555) 321-0987",
			Address:          "321 Elm St, City, State",
			Status:           patient.StatusActive,
			RegistrationDate: date("2023-10-09"),
			LastVisit:        datePtr("2024-01-12"),
			TotalVisits:      2,
		},
	}
}

// Visits returns John Doe's visit history.
func Visits() []*visit.Visit {
	john := ID("patient", 1)
	return []*visit.Visit{
		{
			ID:        ID("visit", 1),
			PatientID: john,
			Type:      visit.TypeConsultation,
			Date:      date("2024-01-15"),
			Doctor:    "Dr. Smith",
			Consultation: &visit.ConsultationPayload{
				Diagnosis: "Regular eye examination. Vision slightly decreased in left eye.",
				Fee:       "150",
				Doctor:    "Dr. Smith",
			},
		},
		{
			ID:        ID("visit", 2),
			PatientID: john,
			Type:      visit.TypeOptical,
			Date:      date("2024-01-10"),
			Doctor:    "Dr. Johnson",
			Diagnosis: "Updated prescription for progressive lenses.",
			Optical: &visit.OpticalPayload{
				Prescriptions: []visit.OpticalRow{
					{Eye: visit.EyeRight, Sph: "-1.25", Cyl: "-0.50", Axis: "180", Add: "+1.75", PD: "32", Distance: "6/6"},
					{Eye: visit.EyeLeft, Sph: "-1.75", Cyl: "-0.75", Axis: "170", Add: "+1.75", PD: "31", Distance: "6/9"},
				},
				LensType:   "progressive",
				Remarks:    "Updated prescription for progressive lenses.",
				FramesCost: "120",
				LensesCost: "200",
			},
		},
		{
			ID:        ID("visit", 3),
			PatientID: john,
			Type:      visit.TypeMedicine,
			Date:      date("2023-12-20"),
			Doctor:    "Dr. Smith",
			Diagnosis: "Eye drops for dry eyes condition.",
			Medicines: []visit.MedicineLine{
				{Name: "Artificial Tears", Quantity: 2, Dosage: "1-2 drops 4 times daily", Price: 12.5},
				{Name: "Cyclosporine", Quantity: 1, Dosage: "1 drop twice daily", Price: 60},
			},
		},
	}
}

// Templates returns the starter prescription templates.
func Templates() []*rxtemplate.Template {
	return []*rxtemplate.Template{
		{
			ID:          ID("template", 1),
			Name:        "Dry Eyes Treatment",
			Category:    "Common Conditions",
			Description: "Standard treatment for dry eye syndrome",
			Medications: []rxtemplate.Medication{
				{Name: "Artificial Tears", Dosage: "1-2 drops", Frequency: "4 times daily", Duration: "As needed"},
				{Name: "Cyclosporine 0.05%", Dosage: "1 drop", Frequency: "Twice daily", Duration: "3 months"},
			},
			Instructions: "Apply artificial tears throughout the day. Use cyclosporine drops 12 hours apart. Avoid preservative-containing drops if using more than 4 times daily.",
			FollowUp:     "2 weeks",
			CreatedBy:    "Dr. Smith",
			LastUsed:     datePtr("2024-01-15"),
			UsageCount:   23,
		},
		{
			ID:          ID("template", 2),
			Name:        "Glaucoma Management",
			Category:    "Chronic Conditions",
			Description: "Primary open-angle glaucoma treatment",
			Medications: []rxtemplate.Medication{
				{Name: "Latanoprost 0.005%", Dosage: "1 drop", Frequency: "Once daily (evening)", Duration: "Ongoing"},
				{Name: "Timolol 0.5%", Dosage: "1 drop", Frequency: "Twice daily", Duration: "Ongoing"},
			},
			Instructions: "Apply latanoprost in the evening. Timolol should be used 12 hours apart. Monitor for side effects including changes in iris color.",
			FollowUp:     "1 month",
			CreatedBy:    "Dr. Johnson",
			LastUsed:     datePtr("2024-01-14"),
			UsageCount:   45,
		},
		{
			ID:          ID("template", 3),
			Name:        "Bacterial Conjunctivitis",
			Category:    "Infections",
			Description: "Antibiotic treatment for bacterial eye infection",
			Medications: []rxtemplate.Medication{
				{Name: "Tobramycin 0.3%", Dosage: "1-2 drops", Frequency: "Every 4 hours", Duration: "7 days"},
				{Name: "Erythromycin Ointment", Dosage: "Small amount", Frequency: "At bedtime", Duration: "7 days"},
			},
			Instructions: "Clean eyes before application. Complete full course even if symptoms improve. Avoid contact lenses during treatment.",
			FollowUp:     "1 week",
			CreatedBy:    "Dr. Smith",
			LastUsed:     datePtr("2024-01-13"),
			UsageCount:   18,
		},
		{
			ID:          ID("template", 4),
			Name:        "Allergic Conjunctivitis",
			Category:    "Allergies",
			Description: "Treatment for seasonal allergic conjunctivitis",
			Medications: []rxtemplate.Medication{
				{Name: "Olopatadine 0.1%", Dosage: "1 drop", Frequency: "Twice daily", Duration: "As needed during allergy season"},
				{Name: "Cold Compress", Dosage: "10-15 minutes", Frequency: "3-4 times daily", Duration: "As needed"},
			},
			Instructions: "Apply drops before exposure to allergens when possible. Use cold compress for additional relief. Avoid rubbing eyes.",
			FollowUp:     "2 weeks if symptoms persist",
			CreatedBy:    "Dr. Wilson",
			LastUsed:     datePtr("2024-01-12"),
			UsageCount:   31,
		},
		{
			ID:          ID("template", 5),
			Name:        "Post-Cataract Surgery",
			Category:    "Post-Operative",
			Description: "Standard post-operative care after cataract surgery",
			Medications: []rxtemplate.Medication{
				{Name: "Prednisolone 1%", Dosage: "1 drop", Frequency: "4 times daily", Duration: "4 weeks (tapering)"},
				{Name: "Moxifloxacin 0.5%", Dosage: "1 drop", Frequency: "4 times daily", Duration: "1 week"},
			},
			Instructions: "Start drops day after surgery. Taper prednisolone weekly. Avoid getting water in eye for 1 week. No heavy lifting for 2 weeks.",
			FollowUp:     "1 day, 1 week, 1 month",
			CreatedBy:    "Dr. Johnson",
			LastUsed:     datePtr("2024-01-11"),
			UsageCount:   67,
		},
	}
}
