package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2025, time.January))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
}

func TestFirstWeekday(t *testing.T) {
	// 2025-01-01 was a Wednesday, 2025-06-01 a Sunday.
	assert.Equal(t, 3, FirstWeekday(2025, time.January))
	assert.Equal(t, 0, FirstWeekday(2025, time.June))
}

func TestBuildCalendarMonth(t *testing.T) {
	today := time.Date(2025, time.January, 20, 15, 4, 0, 0, time.UTC)
	booked := map[string]bool{"2025-01-25": true, "2025-01-10": true}

	cal := BuildCalendarMonth(2025, time.January, today, booked)

	assert.Equal(t, 2025, cal.Year)
	assert.Equal(t, time.January, cal.Month)
	assert.Equal(t, 3, cal.LeadingBlanks)
	require.Len(t, cal.Days, 31)

	assert.Equal(t, "2025-01-01", cal.Days[0].Date)
	assert.False(t, cal.Days[18].Available, "the 19th is before today")
	assert.True(t, cal.Days[19].Available, "today is bookable")
	assert.True(t, cal.Days[30].Available)

	assert.True(t, cal.Days[9].HasAppointment)
	assert.True(t, cal.Days[24].HasAppointment)
	assert.False(t, cal.Days[25].HasAppointment)
}

func TestIsStandardSlot(t *testing.T) {
	assert.Len(t, StandardSlots, 12)
	assert.True(t, IsStandardSlot("09:00"))
	assert.True(t, IsStandardSlot("16:30"))
	assert.False(t, IsStandardSlot("12:00"))
	assert.False(t, IsStandardSlot("9:00"))
}
