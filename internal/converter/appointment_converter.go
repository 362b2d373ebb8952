package converter

import (
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse fills participant names from names, keyed by user id.
func AppointmentToResponse(a *entity.Appointment, names map[uuid.UUID]string) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		PatientName: names[a.PatientID],
		DoctorID:    a.DoctorID,
		DoctorName:  names[a.DoctorID],
		Date:        a.DateString(),
		Time:        a.Time,
		Reason:      a.Reason,
		Status:      string(a.Status),
		Type:        string(a.Type),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment, names map[uuid.UUID]string) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = AppointmentToResponse(&appointments[i], names)
	}
	return responses
}

func CalendarToResponse(cal entity.CalendarMonth) *dto.CalendarResponse {
	days := make([]dto.CalendarDayResponse, len(cal.Days))
	for i, d := range cal.Days {
		days[i] = dto.CalendarDayResponse{
			Day:            d.Day,
			Date:           d.Date,
			Available:      d.Available,
			HasAppointment: d.HasAppointment,
		}
	}

	return &dto.CalendarResponse{
		Year:           cal.Year,
		Month:          int(cal.Month),
		MonthName:      cal.Month.String(),
		WeekdayHeaders: entity.WeekdayHeaders,
		LeadingBlanks:  cal.LeadingBlanks,
		Days:           days,
	}
}
