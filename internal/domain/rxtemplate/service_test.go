package rxtemplate

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var fixedNow = time.Date(2024, 1, 20, 15, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(NewMemoryRepo(), zerolog.Nop())
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func dryEyes() *Template {
	lu := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &Template{
		ID:          uuid.New(),
		Name:        "Dry Eyes Treatment",
		Category:    "Common Conditions",
		Description: "Standard treatment for dry eye syndrome",
		Medications: []Medication{
			{Name: "Artificial Tears", Dosage: "1-2 drops", Frequency: "4 times daily", Duration: "As needed"},
			{Name: "Cyclosporine 0.05%", Dosage: "1 drop", Frequency: "Twice daily", Duration: "3 months"},
		},
		Instructions: "Apply artificial tears throughout the day.",
		FollowUp:     "2 weeks",
		CreatedBy:    "Dr. Smith",
		LastUsed:     &lu,
		UsageCount:   23,
	}
}

func seeded(t *testing.T) (*Service, *Template) {
	t.Helper()
	svc := newTestService()
	tpl := dryEyes()
	if err := svc.Import(context.Background(), tpl); err != nil {
		t.Fatal(err)
	}
	return svc, tpl
}

func TestService_Create(t *testing.T) {
	svc := newTestService()
	tpl := &Template{
		Name:        " Glaucoma Management ",
		Category:    "Chronic Conditions",
		Medications: []Medication{{Name: "Timolol 0.5%", Dosage: "1 drop"}, {}},
		UsageCount:  99,
	}
	if err := svc.Create(context.Background(), tpl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tpl.ID == uuid.Nil {
		t.Error("expected id")
	}
	if tpl.Name != "Glaucoma Management" {
		t.Errorf("expected trimmed name, got %q", tpl.Name)
	}
	if tpl.UsageCount != 0 || tpl.LastUsed != nil {
		t.Error("new templates start unused")
	}
	if len(tpl.Medications) != 1 {
		t.Errorf("expected blank medication row dropped, got %d rows", len(tpl.Medications))
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		tpl  Template
	}{
		{"missing name", Template{Category: "Infections"}},
		{"missing category", Template{Name: "X"}},
		{"category all", Template{Name: "X", Category: "all"}},
		{"medication without name", Template{Name: "X", Category: "Infections", Medications: []Medication{{Dosage: "1 drop"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := tt.tpl
			err := newTestService().Create(context.Background(), &tpl)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestService_Update_KeepsUsage(t *testing.T) {
	svc, tpl := seeded(t)
	upd := &Template{ID: tpl.ID, Name: "Dry Eyes (revised)", Category: "Common Conditions", UsageCount: 0}
	if err := svc.Update(context.Background(), upd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(context.Background(), tpl.ID)
	if got.Name != "Dry Eyes (revised)" {
		t.Errorf("expected name updated, got %q", got.Name)
	}
	if got.UsageCount != 23 || got.CreatedBy != "Dr. Smith" {
		t.Errorf("expected usage and author kept, got %d %q", got.UsageCount, got.CreatedBy)
	}
}

func TestService_Duplicate(t *testing.T) {
	svc, src := seeded(t)
	cp, err := svc.Duplicate(context.Background(), src.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cp.ID == src.ID || cp.ID == uuid.Nil {
		t.Error("copy needs a new id")
	}
	if cp.Name != "Dry Eyes Treatment (Copy)" {
		t.Errorf("unexpected name %q", cp.Name)
	}
	if cp.UsageCount != 0 {
		t.Errorf("expected usage 0, got %d", cp.UsageCount)
	}
	today := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	if cp.LastUsed == nil || !cp.LastUsed.Equal(today) {
		t.Errorf("expected last used today, got %v", cp.LastUsed)
	}

	if cp.Category != src.Category || cp.Description != src.Description ||
		cp.Instructions != src.Instructions || cp.FollowUp != src.FollowUp ||
		cp.CreatedBy != src.CreatedBy || !reflect.DeepEqual(cp.Medications, src.Medications) {
		t.Errorf("copy must preserve every other field:\n src=%+v\n cp=%+v", src, cp)
	}

	orig, _ := svc.Get(context.Background(), src.ID)
	if orig.UsageCount != 23 || orig.Name != "Dry Eyes Treatment" {
		t.Error("source template must be untouched")
	}

	all, _ := svc.Filter(context.Background(), "", "")
	if len(all) != 2 || all[1].ID != cp.ID {
		t.Error("copy should be appended after the source")
	}
}

func TestService_Duplicate_NotFound(t *testing.T) {
	_, err := newTestService().Duplicate(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, tpl := seeded(t)
	ctx := context.Background()
	if err := svc.Delete(ctx, tpl.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_Filter(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	for _, tpl := range []*Template{
		{Name: "Dry Eyes Treatment", Category: "Common Conditions", Description: "Standard treatment for dry eye syndrome"},
		{Name: "Glaucoma Management", Category: "Chronic Conditions", Description: "Primary open-angle glaucoma treatment"},
		{Name: "Bacterial Conjunctivitis", Category: "Infections", Description: "Antibiotic treatment for bacterial eye infection"},
		{Name: "Allergic Conjunctivitis", Category: "Allergies", Description: "Treatment for seasonal allergic conjunctivitis"},
	} {
		if err := svc.Create(ctx, tpl); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		query, category string
		want            []string
	}{
		{"", "", []string{"Dry Eyes Treatment", "Glaucoma Management", "Bacterial Conjunctivitis", "Allergic Conjunctivitis"}},
		{"", "all", []string{"Dry Eyes Treatment", "Glaucoma Management", "Bacterial Conjunctivitis", "Allergic Conjunctivitis"}},
		{"conjunctivitis", "", []string{"Bacterial Conjunctivitis", "Allergic Conjunctivitis"}},
		{"conjunctivitis", "Allergies", []string{"Allergic Conjunctivitis"}},
		{"ANTIBIOTIC", "", []string{"Bacterial Conjunctivitis"}},
		{"", "Infections", []string{"Bacterial Conjunctivitis"}},
		{"glaucoma", "Infections", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.category, func(t *testing.T) {
			got, err := svc.Filter(ctx, tt.query, tt.category)
			if err != nil {
				t.Fatal(err)
			}
			var names []string
			for _, tpl := range got {
				names = append(names, tpl.Name)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("Filter(%q, %q) = %v, want %v", tt.query, tt.category, names, tt.want)
			}
		})
	}
}

func TestService_Categories(t *testing.T) {
	svc, _ := seeded(t)
	svc.Create(context.Background(), &Template{Name: "Pediatric Amblyopia", Category: "Pediatrics"})

	got, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := append(append([]string(nil), DefaultCategories...), "Pediatrics")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestService_Apply(t *testing.T) {
	svc, tpl := seeded(t)
	applied, err := svc.Apply(context.Background(), tpl.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied.Template.UsageCount != 24 {
		t.Errorf("expected usage 24, got %d", applied.Template.UsageCount)
	}
	got, _ := svc.Get(context.Background(), tpl.ID)
	if got.UsageCount != 24 {
		t.Errorf("usage not stored, got %d", got.UsageCount)
	}
	if !strings.Contains(applied.Text, "• Artificial Tears - 1-2 drops 4 times daily (As needed)") {
		t.Errorf("unexpected prescription text:\n%s", applied.Text)
	}
	if !strings.HasSuffix(applied.Text, "Follow-up: 2 weeks") {
		t.Errorf("expected follow-up last, got:\n%s", applied.Text)
	}
}
