package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAppointmentFilterMatches(t *testing.T) {
	patient, doctor := uuid.New(), uuid.New()
	apt := &Appointment{
		PatientID: patient,
		DoctorID:  doctor,
		Date:      time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC),
		Status:    AppointmentStatusScheduled,
		Type:      AppointmentTypeCheckup,
	}

	assert.True(t, AppointmentFilter{PatientID: patient}.Matches(apt))
	assert.False(t, AppointmentFilter{PatientID: doctor}.Matches(apt))
	assert.True(t, AppointmentFilter{DoctorID: doctor, Status: AppointmentStatusScheduled}.Matches(apt))
	assert.False(t, AppointmentFilter{Status: AppointmentStatusCompleted}.Matches(apt))
	assert.False(t, AppointmentFilter{Type: AppointmentTypeFollowUp}.Matches(apt))
	assert.True(t, AppointmentFilter{DateFrom: "2025-01-25", DateTo: "2025-01-25"}.Matches(apt))
	assert.False(t, AppointmentFilter{DateFrom: "2025-01-26"}.Matches(apt))
}

func TestAppointmentParticipants(t *testing.T) {
	patient, doctor := uuid.New(), uuid.New()
	apt := &Appointment{PatientID: patient, DoctorID: doctor}

	assert.True(t, apt.IsParticipant(patient))
	assert.True(t, apt.IsParticipant(doctor))
	assert.False(t, apt.IsParticipant(uuid.New()))
	assert.Equal(t, doctor, apt.CounterpartOf(patient))
	assert.Equal(t, patient, apt.CounterpartOf(doctor))
}

func TestNotificationFilterMatches(t *testing.T) {
	unread := &Notification{Type: NotificationTypeMedication}
	read := &Notification{Type: NotificationTypeAppointment, Read: true}

	assert.True(t, NotificationFilterAll.Matches(read))
	assert.True(t, NotificationFilterUnread.Matches(unread))
	assert.False(t, NotificationFilterUnread.Matches(read))
	assert.True(t, NotificationFilterMedication.Matches(unread))
	assert.False(t, NotificationFilterMedication.Matches(read))

	unread.MarkRead()
	assert.False(t, NotificationFilterUnread.Matches(unread))
}
