package patient

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	StatusActive   = "Active"
	StatusFollowUp = "Follow-up"
	StatusInactive = "Inactive"
)

// Patient maps to the patient table. LastVisit and TotalVisits are
// maintained by the visit service.
type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Age              int        `db:"age" json:"age"`
	Gender           string     `db:"gender" json:"gender"`
	Mobile           string     `db:"mobile" json:"mobile"`
	Address          string     `db:"address" json:"address"`
	Status           string     `db:"status" json:"status"`
	RegistrationDate time.Time  `db:"registration_date" json:"registration_date"`
	LastVisit        *time.Time `db:"last_visit" json:"last_visit,omitempty"`
	TotalVisits      int        `db:"total_visits" json:"total_visits"`
}

func (p *Patient) clone() *Patient {
	cp := *p
	if p.LastVisit != nil {
		lv := *p.LastVisit
		cp.LastVisit = &lv
	}
	return &cp
}

// searchFields are the fields the directory search looks at.
func searchFields(p *Patient) []string {
	return []string{p.Name, p.Mobile}
}
