package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Medication struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Dosage         string     `gorm:"type:varchar(50);not null" json:"dosage"`
	Frequency      string     `gorm:"type:varchar(50);not null" json:"frequency"`
	StartDate      time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time  `gorm:"type:date;not null" json:"end_date"`
	Taken          bool       `gorm:"not null" json:"taken"`
	NextDose       time.Time  `gorm:"not null;index" json:"next_dose"`
	LastRemindedAt *time.Time `json:"last_reminded_at,omitempty"`
}

func (Medication) TableName() string {
	return "medications"
}

// DoseInterval derives the gap between doses from the frequency text.
// Unknown frequencies count as once daily.
func (m *Medication) DoseInterval() time.Duration {
	freq := strings.ToLower(strings.TrimSpace(m.Frequency))
	switch freq {
	case "once daily", "daily":
		return 24 * time.Hour
	case "twice daily":
		return 12 * time.Hour
	case "three times daily":
		return 8 * time.Hour
	case "four times daily":
		return 6 * time.Hour
	}
	var hours int
	if _, err := fmt.Sscanf(freq, "every %d hours", &hours); err == nil && hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return 24 * time.Hour
}

// IsActive reports whether now falls within the prescription, end day inclusive.
func (m *Medication) IsActive(now time.Time) bool {
	day := TruncateDay(now)
	return !day.Before(TruncateDay(m.StartDate)) && !day.After(TruncateDay(m.EndDate))
}

// MarkTaken records the current dose and moves NextDose past now.
func (m *Medication) MarkTaken(now time.Time) {
	interval := m.DoseInterval()
	next := m.NextDose.Add(interval)
	for !next.After(now) {
		next = next.Add(interval)
	}
	m.Taken = true
	m.NextDose = next
}

// DoseDue reports whether the next dose time has arrived.
func (m *Medication) DoseDue(now time.Time) bool {
	return !m.NextDose.After(now)
}

// NeedsReminder is true once per dose: the dose is due and no reminder was
// sent since it became due.
func (m *Medication) NeedsReminder(now time.Time) bool {
	if !m.DoseDue(now) || !m.IsActive(now) {
		return false
	}
	return m.LastRemindedAt == nil || m.LastRemindedAt.Before(m.NextDose)
}
