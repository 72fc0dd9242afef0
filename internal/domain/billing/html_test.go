package billing

import (
	"strings"
	"testing"

	"github.com/eyecare/clinic/internal/domain/visit"
)

func TestRenderHTML_Medicine(t *testing.T) {
	v := &visit.Visit{
		Type:      visit.TypeMedicine,
		Medicines: []visit.MedicineLine{{Name: "Artificial Tears", Quantity: 2, Dosage: "1 drop", Price: 10}, {Name: "Timolol", Quantity: 1, Price: 5}},
	}
	page, err := RenderHTML(Render(testClinic, testJohn, v, testNow, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"EyeCare Clinic",
		"Phone: (555) 123-4567",
		"Bill #: 645123",
		"Patient: John Doe",
		"Medicine Details",
		"Artificial Tears",
		"$20.00",
		"TOTAL AMOUNT</span><span>$25.00",
		"PAID",
		"Next Follow-up: 02/14/2024",
		"width: 105mm",
		"window.print()",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("bill page missing %q", want)
		}
	}
}

func TestRenderHTML_OpticalDashesBlankCells(t *testing.T) {
	v := &visit.Visit{
		Type:    visit.TypeOptical,
		Optical: &visit.OpticalPayload{Prescriptions: visit.DefaultOpticalRows(), FramesCost: "50"},
	}
	page, err := RenderHTML(Render(testClinic, testJohn, v, testNow, 30))
	if err != nil {
		t.Fatal(err)
	}
	html := string(page)
	if !strings.Contains(html, `<td class="mid">-</td>`) {
		t.Error("blank prescription values should print as -")
	}
	if !strings.Contains(html, "Optical Prescription Details") {
		t.Error("missing optical heading")
	}
}

func TestRenderHTML_EscapesInput(t *testing.T) {
	v := &visit.Visit{
		Type:         visit.TypeConsultation,
		Consultation: &visit.ConsultationPayload{Diagnosis: "<script>alert(1)</script>", Fee: "1"},
	}
	page, err := RenderHTML(Render(testClinic, testJohn, v, testNow, 30))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(page), "<script>alert(1)</script>") {
		t.Error("diagnosis must be escaped")
	}
}
