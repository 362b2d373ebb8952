package entity

import "time"

// WeekdayHeaders are the calendar column labels, Sunday first.
var WeekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// StandardSlots is the half-hour booking grid offered for every day.
var StandardSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

func IsStandardSlot(slot string) bool {
	for _, s := range StandardSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type CalendarDay struct {
	Day            int
	Date           string
	Available      bool
	HasAppointment bool
}

// CalendarMonth is a month grid. LeadingBlanks is the number of empty cells
// before day 1 when weeks start on Sunday.
type CalendarMonth struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Days          []CalendarDay
}

// DaysInMonth uses day 0 of the following month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of day 1, 0 for Sunday.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildCalendarMonth marks days on or after today as available and flags the
// dates present in booked (keyed by YYYY-MM-DD).
func BuildCalendarMonth(year int, month time.Month, today time.Time, booked map[string]bool) CalendarMonth {
	todayStr := today.UTC().Format(DateLayout)
	n := DaysInMonth(year, month)

	days := make([]CalendarDay, 0, n)
	for day := 1; day <= n; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		days = append(days, CalendarDay{
			Day:            day,
			Date:           date,
			Available:      date >= todayStr,
			HasAppointment: booked[date],
		})
	}

	return CalendarMonth{
		Year:          year,
		Month:         month,
		LeadingBlanks: FirstWeekday(year, month),
		Days:          days,
	}
}

// TruncateDay drops the clock part in UTC.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
