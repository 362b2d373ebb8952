package dto

import (
	"time"

	"github.com/google/uuid"
)

type MedicationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Frequency string    `json:"frequency"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Taken     bool      `json:"taken"`
	NextDose  time.Time `json:"next_dose"`
	Active    bool      `json:"active"`
}

type MedicationListResponse struct {
	Medications []MedicationResponse `json:"medications"`
	Total       int                  `json:"total"`
}
