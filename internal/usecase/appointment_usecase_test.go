package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/seed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookRequest(date, slot string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		DoctorID: seed.DoctorSarahID.String(),
		Date:     date,
		Time:     slot,
		Reason:   "Annual physical",
	}
}

func TestListAppointmentsByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.appointments.List(ctx, john, dto.AppointmentListQuery{})
	require.NoError(t, err)
	require.Equal(t, 3, res.Total)
	assert.Equal(t, day(-30), res.Appointments[0].Date)
	assert.Equal(t, "Dr. Sarah Johnson", res.Appointments[0].DoctorName)
	assert.Equal(t, "John Smith", res.Appointments[0].PatientName)

	res, err = env.appointments.List(ctx, john, dto.AppointmentListQuery{Status: "scheduled"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = env.appointments.List(ctx, sarah, dto.AppointmentListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)

	res, err = env.appointments.List(ctx, michael, dto.AppointmentListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestGetAppointmentRequiresParticipant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	list, err := env.appointments.List(ctx, john, dto.AppointmentListQuery{})
	require.NoError(t, err)
	id := list.Appointments[0].ID

	_, err = env.appointments.Get(ctx, sarah, id)
	assert.NoError(t, err)

	_, err = env.appointments.Get(ctx, emma, id)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.appointments.Get(ctx, john, uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCalendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cal, err := env.appointments.Calendar(ctx, john, 2025, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "January", cal.MonthName)
	assert.Equal(t, 3, cal.LeadingBlanks)
	require.Len(t, cal.Days, 31)
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, cal.WeekdayHeaders)

	assert.False(t, cal.Days[18].Available)
	assert.True(t, cal.Days[19].Available)
	assert.True(t, cal.Days[24].HasAppointment)
	assert.True(t, cal.Days[27].HasAppointment)
	assert.False(t, cal.Days[19].HasAppointment)

	doctorID := seed.DoctorSarahID
	cal, err = env.appointments.Calendar(ctx, john, 2025, 1, &doctorID)
	require.NoError(t, err)
	assert.True(t, cal.Days[19].HasAppointment)

	_, err = env.appointments.Calendar(ctx, john, 2025, 13, nil)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.appointments.Slots(ctx, seed.DoctorSarahID, day(5))
	require.NoError(t, err)
	require.Len(t, res.Slots, len(entity.StandardSlots))
	for _, s := range res.Slots {
		assert.Equal(t, s.Time != "10:00", s.Available, s.Time)
	}

	res, err = env.appointments.Slots(ctx, seed.DoctorSarahID, day(-1))
	require.NoError(t, err)
	for _, s := range res.Slots {
		assert.False(t, s.Available)
	}

	_, err = env.appointments.Slots(ctx, seed.PatientJohnID, day(1))
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = env.appointments.Slots(ctx, seed.DoctorSarahID, "20-01-2025")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("creates scheduled consultation and notifies", func(t *testing.T) {
		res, err := env.appointments.Book(ctx, emma, bookRequest(day(2), "09:30"))
		require.NoError(t, err)
		assert.Equal(t, "scheduled", res.Status)
		assert.Equal(t, "consultation", res.Type)
		assert.Equal(t, "Emma Wilson", res.PatientName)

		list, err := env.notifications.List(ctx, emma, dto.NotificationListQuery{Filter: "appointment"})
		require.NoError(t, err)
		require.Len(t, list.Notifications, 1)
		assert.Equal(t, "Appointment Booked", list.Notifications[0].Title)
		assert.Equal(t, "medium", list.Notifications[0].Priority)
	})

	t.Run("skips notification when preference is off", func(t *testing.T) {
		off := false
		on := true
		_, err := env.profile.UpdatePreferences(ctx, john, &dto.UpdatePreferencesRequest{
			Appointments: &off, Medication: &on, Results: &off, Marketing: &off,
		})
		require.NoError(t, err)

		before, err := env.notifications.List(ctx, john, dto.NotificationListQuery{})
		require.NoError(t, err)

		_, err = env.appointments.Book(ctx, john, bookRequest(day(3), "15:00"))
		require.NoError(t, err)

		after, err := env.notifications.List(ctx, john, dto.NotificationListQuery{})
		require.NoError(t, err)
		assert.Equal(t, before.Total, after.Total)
	})

	cases := []struct {
		name  string
		actor entity.Actor
		req   *dto.CreateAppointmentRequest
		err   error
	}{
		{"doctor cannot book", sarah, bookRequest(day(2), "10:00"), ErrPatientOnly},
		{"slot taken", emma, bookRequest(day(5), "10:00"), ErrSlotTaken},
		{"past date", emma, bookRequest(day(-1), "10:00"), ErrDateInPast},
		{"non standard slot", emma, bookRequest(day(2), "12:00"), ErrInvalidSlot},
		{"bad type", emma, &dto.CreateAppointmentRequest{DoctorID: seed.DoctorSarahID.String(), Date: day(2), Time: "11:30", Reason: "x", Type: "surgery"}, ErrInvalidAppointmentType},
		{"unknown doctor", emma, &dto.CreateAppointmentRequest{DoctorID: seed.PatientJohnID.String(), Date: day(2), Time: "11:30", Reason: "x"}, ErrDoctorNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.appointments.Book(ctx, tc.actor, tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestBookSameSlotConcurrently(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var booked, taken atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.appointments.Book(ctx, emma, bookRequest(day(4), "16:30"))
			switch err {
			case nil:
				booked.Add(1)
			case ErrSlotTaken:
				taken.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), booked.Load())
	assert.Equal(t, int32(9), taken.Load())
}

func TestCancelAndComplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.appointments.Book(ctx, emma, bookRequest(day(1), "14:00"))
	require.NoError(t, err)

	_, err = env.appointments.Complete(ctx, emma, res.ID)
	assert.ErrorIs(t, err, ErrDoctorOnly)

	_, err = env.appointments.Cancel(ctx, michael, res.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	cancelled, err := env.appointments.Cancel(ctx, sarah, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	_, err = env.appointments.Cancel(ctx, emma, res.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotActive)

	_, err = env.appointments.Complete(ctx, sarah, res.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotActive)

	// The cancelled slot can be booked again.
	_, err = env.appointments.Book(ctx, john, bookRequest(day(1), "14:00"))
	require.NoError(t, err)

	list, err := env.appointments.List(ctx, emma, dto.AppointmentListQuery{Status: "scheduled"})
	require.NoError(t, err)
	require.Len(t, list.Appointments, 1)

	completed, err := env.appointments.Complete(ctx, sarah, list.Appointments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
}
