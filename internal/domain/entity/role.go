package entity

import "github.com/google/uuid"

// Role gates which dashboard and actions a user sees.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func (r Role) IsValid() bool {
	return r == RolePatient || r == RoleDoctor
}

// Counterpart is the role a user of this role talks to and books with.
func (r Role) Counterpart() Role {
	if r == RoleDoctor {
		return RolePatient
	}
	return RoleDoctor
}

// Actor is the authenticated caller of a usecase.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsPatient() bool {
	return a.Role == RolePatient
}

func (a Actor) IsDoctor() bool {
	return a.Role == RoleDoctor
}
