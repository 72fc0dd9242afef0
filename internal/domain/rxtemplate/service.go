package rxtemplate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eyecare/clinic/internal/platform/search"
)

var (
	ErrNotFound   = errors.New("template not found")
	ErrValidation = errors.New("invalid template")
)

type Service struct {
	templates Repository
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(templates Repository, logger zerolog.Logger) *Service {
	return &Service{
		templates: templates,
		log:       logger.With().Str("component", "rxtemplate").Logger(),
		now:       time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) today() *time.Time {
	n := s.now()
	d := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
	return &d
}

// clean trims text fields and drops medication rows left blank in the form.
func clean(t *Template) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = strings.TrimSpace(t.Category)
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if t.Category == "" || strings.EqualFold(t.Category, CategoryAll) {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}

	meds := make([]Medication, 0, len(t.Medications))
	for i, m := range t.Medications {
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			if m.Dosage != "" || m.Frequency != "" || m.Duration != "" {
				return fmt.Errorf("%w: medication %d: name is required", ErrValidation, i+1)
			}
			continue
		}
		meds = append(meds, m)
	}
	t.Medications = meds
	return nil
}

// Create stores a new template with fresh usage statistics.
func (s *Service) Create(ctx context.Context, t *Template) error {
	if err := clean(t); err != nil {
		return err
	}
	t.ID = uuid.New()
	t.UsageCount = 0
	t.LastUsed = nil
	if err := s.templates.Create(ctx, t); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	s.log.Info().Str("template_id", t.ID.String()).Str("name", t.Name).Msg("template created")
	return nil
}

// Import stores a template as given, keeping id and usage statistics.
func (s *Service) Import(ctx context.Context, t *Template) error {
	if err := clean(t); err != nil {
		return err
	}
	return s.templates.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	return s.templates.GetByID(ctx, id)
}

// Update replaces the content of a template. Author and usage statistics
// stay as stored.
func (s *Service) Update(ctx context.Context, t *Template) error {
	existing, err := s.templates.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}
	if err := clean(t); err != nil {
		return err
	}
	if t.CreatedBy == "" {
		t.CreatedBy = existing.CreatedBy
	}
	t.UsageCount = existing.UsageCount
	t.LastUsed = existing.LastUsed
	return s.templates.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("template_id", id.String()).Msg("template deleted")
	return nil
}

// Duplicate copies a template under a new id. The copy is named
// "<name> (Copy)", starts with zero uses and counts as used today.
func (s *Service) Duplicate(ctx context.Context, id uuid.UUID) (*Template, error) {
	src, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := src.clone()
	cp.ID = uuid.New()
	cp.Name = src.Name + " (Copy)"
	cp.UsageCount = 0
	cp.LastUsed = s.today()
	if err := s.templates.Create(ctx, cp); err != nil {
		return nil, fmt.Errorf("create template copy: %w", err)
	}
	s.log.Info().
		Str("template_id", cp.ID.String()).
		Str("source_id", id.String()).
		Msg("template duplicated")
	return cp, nil
}

// Filter returns templates whose name or description contains query and
// whose category equals category. An empty category or "all" matches any.
func (s *Service) Filter(ctx context.Context, query, category string) ([]*Template, error) {
	all, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category != "" && !strings.EqualFold(category, CategoryAll) {
		inCategory := all[:0]
		for _, t := range all {
			if t.Category == category {
				inCategory = append(inCategory, t)
			}
		}
		all = inCategory
	}
	return search.Filter(query, all, searchFields), nil
}

// Categories returns the built-in categories followed by any other category
// found in the store, in first-seen order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(DefaultCategories))
	out := append([]string(nil), DefaultCategories...)
	for _, c := range out {
		seen[c] = true
	}
	for _, t := range all {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out, nil
}

// Applied is the result of using a template on a prescription.
type Applied struct {
	Template *Template `json:"template"`
	Text     string    `json:"text"`
}

// Apply records a use of the template and returns the prescription text.
func (s *Service) Apply(ctx context.Context, id uuid.UUID) (*Applied, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.UsageCount++
	t.LastUsed = s.today()
	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return &Applied{Template: t, Text: t.PrescriptionText()}, nil
}
