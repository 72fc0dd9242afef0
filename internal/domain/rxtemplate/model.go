package rxtemplate

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Built-in categories offered by the template form, in display order.
var DefaultCategories = []string{
	"Common Conditions",
	"Chronic Conditions",
	"Infections",
	"Allergies",
	"Post-Operative",
}

// CategoryAll selects every category when filtering.
const CategoryAll = "all"

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Template maps to the prescription_template table.
type Template struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	Description  string       `json:"description"`
	Medications  []Medication `json:"medications"`
	Instructions string       `json:"instructions"`
	FollowUp     string       `json:"follow_up"`
	CreatedBy    string       `json:"created_by"`
	LastUsed     *time.Time   `json:"last_used,omitempty"`
	UsageCount   int          `json:"usage_count"`
}

func (t *Template) clone() *Template {
	cp := *t
	cp.Medications = append([]Medication(nil), t.Medications...)
	if t.LastUsed != nil {
		lu := *t.LastUsed
		cp.LastUsed = &lu
	}
	return &cp
}

func searchFields(t *Template) []string {
	return []string{t.Name, t.Description}
}

// PrescriptionText renders the template the way it is pasted into
// consultation notes.
func (t *Template) PrescriptionText() string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString("\n")
	for _, m := range t.Medications {
		fmt.Fprintf(&b, "• %s - %s %s", m.Name, m.Dosage, m.Frequency)
		if m.Duration != "" {
			fmt.Fprintf(&b, " (%s)", m.Duration)
		}
		b.WriteString("\n")
	}
	if t.Instructions != "" {
		fmt.Fprintf(&b, "Instructions: %s\n", t.Instructions)
	}
	if t.FollowUp != "" {
		fmt.Fprintf(&b, "Follow-up: %s\n", t.FollowUp)
	}
	return strings.TrimRight(b.String(), "\n")
}
