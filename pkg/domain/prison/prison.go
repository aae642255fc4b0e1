// Package prison holds the prison estate entities referenced by credits,
// disbursements and security profiles.
package prison

import (
	"time"

	"github.com/google/uuid"
)

// Prison is an establishment, keyed by its NOMIS id.
type Prison struct {
	NomisID string
	Name    string
}

// PrisonerLocation records where a prisoner is (or was) held. At most one
// location per prisoner number is active at a time.
type PrisonerLocation struct {
	ID               uuid.UUID
	PrisonerNumber   string
	PrisonerName     string
	PrisonerDOB      *time.Time
	SingleOffenderID *string
	PrisonID         string
	Active           bool
}
