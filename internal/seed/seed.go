// Package seed loads the demonstration data set the clinic ships with.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/rxtemplate"
	"github.com/eyecare/clinic/internal/domain/visit"
)

type PatientImporter interface {
	Import(ctx context.Context, p *patient.Patient) error
	Search(ctx context.Context, query string) ([]*patient.Patient, error)
}

type VisitImporter interface {
	Import(ctx context.Context, v *visit.Visit) error
}

type TemplateImporter interface {
	Import(ctx context.Context, t *rxtemplate.Template) error
}

// Result counts what Load wrote.
type Result struct {
	Patients  int  `json:"patients"`
	Visits    int  `json:"visits"`
	Templates int  `json:"templates"`
	Skipped   bool `json:"skipped"`
}

// ID returns the stable id of a seeded record, so repeated seeding and
// links to the demo data keep working across restarts.
func ID(kind string, n int) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("clinic:%s:%d", kind, n)))
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

// Load imports the demo data unless the patient directory already has
// records.
func Load(ctx context.Context, patients PatientImporter, visits VisitImporter, templates TemplateImporter, logger zerolog.Logger) (*Result, error) {
	log := logger.With().Str("component", "seed").Logger()

	existing, err := patients.Search(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("check existing patients: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("patients", len(existing)).Msg("store not empty, skipping seed")
		return &Result{Skipped: true}, nil
	}

	res := &Result{}
	for _, p := range Patients() {
		if err := patients.Import(ctx, p); err != nil {
			return res, fmt.Errorf("seed patient %s: %w", p.Name, err)
		}
		res.Patients++
	}
	for _, v := range Visits() {
		if err := visits.Import(ctx, v); err != nil {
			return res, fmt.Errorf("seed visit %s: %w", v.ID, err)
		}
		res.Visits++
	}
	for _, t := range Templates() {
		if err := templates.Import(ctx, t); err != nil {
			return res, fmt.Errorf("seed template %s: %w", t.Name, err)
		}
		res.Templates++
	}

	log.Info().
		Int("patients", res.Patients).
		Int("visits", res.Visits).
		Int("templates", res.Templates).
		Msg("demo data loaded")
	return res, nil
}
