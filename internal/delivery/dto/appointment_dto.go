package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Reason   string `json:"reason" validate:"required,notblank,max=500"`
	Type     string `json:"type" validate:"omitempty,oneof=consultation checkup follow-up"`
}

type AppointmentListQuery struct {
	Status string `validate:"omitempty,oneof=scheduled completed cancelled"`
	Type   string `validate:"omitempty,oneof=consultation checkup follow-up"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type CalendarDayResponse struct {
	Day            int    `json:"day"`
	Date           string `json:"date"`
	Available      bool   `json:"available"`
	HasAppointment bool   `json:"has_appointment"`
}

type CalendarResponse struct {
	Year           int                   `json:"year"`
	Month          int                   `json:"month"`
	MonthName      string                `json:"month_name"`
	WeekdayHeaders []string              `json:"weekday_headers"`
	LeadingBlanks  int                   `json:"leading_blanks"`
	Days           []CalendarDayResponse `json:"days"`
}

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type SlotsResponse struct {
	DoctorID uuid.UUID      `json:"doctor_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}
