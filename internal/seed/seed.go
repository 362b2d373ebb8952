// Package seed builds the demo dataset the portal starts with: two doctors,
// two patients and the records the dashboards display. Dates are anchored to
// the moment the dataset is built so upcoming appointments stay upcoming.
package seed

import (
	"fmt"
	"time"

	"go-healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	DoctorSarahID   = uuid.MustParse("6f1d2c3a-0000-4000-8000-000000000001")
	PatientJohnID   = uuid.MustParse("6f1d2c3a-0000-4000-8000-000000000002")
	DoctorMichaelID = uuid.MustParse("6f1d2c3a-0000-4000-8000-000000000003")
	PatientEmmaID   = uuid.MustParse("6f1d2c3a-0000-4000-8000-000000000004")
)

const (
	DoctorSarahEmail = "sarah.johnson@hospital.com"
	PatientJohnEmail = "john.smith@email.com"
)

// Dataset is every record the portal is seeded with.
type Dataset struct {
	Users         []entity.User
	Preferences   []entity.NotificationPreference
	Appointments  []entity.Appointment
	Messages      []entity.Message
	HealthMetrics []entity.HealthMetric
	Medications   []entity.Medication
	Notifications []entity.Notification
}

// Build creates the dataset. Every demo account shares demoPassword.
func Build(demoPassword string, now time.Time) (*Dataset, error) {
	return BuildWithCost(demoPassword, now, bcrypt.DefaultCost)
}

// BuildWithCost is Build with an explicit bcrypt cost so tests stay fast.
func BuildWithCost(demoPassword string, now time.Time, cost int) (*Dataset, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	now = now.UTC()
	today := entity.TruncateDay(now)

	ds := &Dataset{
		Users:         users(string(hash), now),
		Appointments:  appointments(today, now),
		Messages:      messages(today),
		HealthMetrics: healthMetrics(today, now),
		Medications:   medications(today),
		Notifications: notifications(today, now),
	}
	for _, u := range ds.Users {
		ds.Preferences = append(ds.Preferences, *entity.DefaultNotificationPreference(u.ID))
	}
	return ds, nil
}

func users(passwordHash string, now time.Time) []entity.User {
	johnDOB := time.Date(1985, time.March, 15, 0, 0, 0, 0, time.UTC)
	emmaDOB := time.Date(1990, time.July, 22, 0, 0, 0, 0, time.UTC)

	return []entity.User{
		{
			ID:             DoctorSarahID,
			Role:           entity.RoleDoctor,
			Email:          DoctorSarahEmail,
			Password:       passwordHash,
			Name:           "Dr. Sarah Johnson",
			Specialization: "Cardiology",
			Phone:          "+1 (555) 123-4567",
			Avatar:         "https://images.pexels.com/photos/5407206/pexels-photo-5407206.jpeg?auto=compress&cs=tinysrgb&w=150",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:          PatientJohnID,
			Role:        entity.RolePatient,
			Email:       PatientJohnEmail,
			Password:    passwordHash,
			Name:        "John Smith",
			DateOfBirth: &johnDOB,
			Phone:       "+1 (555) 987-6543",
			Address:     "123 Main St, City, State 12345",
			Avatar:      "https://images.pexels.com/photos/1040880/pexels-photo-1040880.jpeg?auto=compress&cs=tinysrgb&w=150",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:             DoctorMichaelID,
			Role:           entity.RoleDoctor,
			Email:          "michael.chen@hospital.com",
			Password:       passwordHash,
			Name:           "Dr. Michael Chen",
			Specialization: "Dermatology",
			Phone:          "+1 (555) 222-1100",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:          PatientEmmaID,
			Role:        entity.RolePatient,
			Email:       "emma.wilson@email.com",
			Password:    passwordHash,
			Name:        "Emma Wilson",
			DateOfBirth: &emmaDOB,
			Phone:       "+1 (555) 444-7788",
			Address:     "48 Oak Avenue, City, State 12345",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

func appointments(today, now time.Time) []entity.Appointment {
	return []entity.Appointment{
		{
			ID:        uuid.MustParse("6f1d2c3a-0001-4000-8000-000000000001"),
			PatientID: PatientJohnID,
			DoctorID:  DoctorSarahID,
			Date:      today.AddDate(0, 0, 5),
			Time:      "10:00",
			Reason:    "Regular checkup",
			Status:    entity.AppointmentStatusScheduled,
			Type:      entity.AppointmentTypeCheckup,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.MustParse("6f1d2c3a-0001-4000-8000-000000000002"),
			PatientID: PatientJohnID,
			DoctorID:  DoctorSarahID,
			Date:      today.AddDate(0, 0, 8),
			Time:      "14:30",
			Reason:    "Follow-up consultation",
			Status:    entity.AppointmentStatusScheduled,
			Type:      entity.AppointmentTypeFollowUp,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.MustParse("6f1d2c3a-0001-4000-8000-000000000003"),
			PatientID: PatientJohnID,
			DoctorID:  DoctorSarahID,
			Date:      today.AddDate(0, 0, -30),
			Time:      "09:30",
			Reason:    "Blood pressure review",
			Status:    entity.AppointmentStatusCompleted,
			Type:      entity.AppointmentTypeConsultation,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        uuid.MustParse("6f1d2c3a-0001-4000-8000-000000000004"),
			PatientID: PatientEmmaID,
			DoctorID:  DoctorSarahID,
			Date:      today,
			Time:      "11:00",
			Reason:    "Chest pain evaluation",
			Status:    entity.AppointmentStatusScheduled,
			Type:      entity.AppointmentTypeConsultation,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func messages(today time.Time) []entity.Message {
	yesterday := today.AddDate(0, 0, -1)
	return []entity.Message{
		{
			ID:         uuid.MustParse("6f1d2c3a-0002-4000-8000-000000000001"),
			SenderID:   DoctorSarahID,
			ReceiverID: PatientJohnID,
			Content:    "Hello John, I wanted to follow up on your recent test results. Everything looks good, but please continue taking your medication as prescribed.",
			Timestamp:  yesterday.Add(14*time.Hour + 30*time.Minute),
			Read:       true,
		},
		{
			ID:         uuid.MustParse("6f1d2c3a-0002-4000-8000-000000000002"),
			SenderID:   PatientJohnID,
			ReceiverID: DoctorSarahID,
			Content:    "Thank you doctor! I have a question about the dosage - should I take it with food?",
			Timestamp:  yesterday.Add(15*time.Hour + 45*time.Minute),
			Read:       true,
		},
	}
}

// Seven daily readings per metric, the last one dated today.
var (
	heartRateSeries = []float64{72, 75, 71, 68, 74, 76, 73}
	systolicSeries  = []int{120, 118, 122, 115, 121, 119, 120}
	diastolicSeries = []int{80, 78, 82, 75, 81, 79, 80}
	glucoseSeries   = []float64{95, 102, 88, 94, 91, 98, 96}
	weightSeries    = []float64{75.2, 75.0, 74.8, 74.9, 75.1, 75.3, 75.0}
)

func healthMetrics(today, now time.Time) []entity.HealthMetric {
	var metrics []entity.HealthMetric
	n := len(heartRateSeries)

	add := func(idx, seq int, t entity.MetricType, value decimal.Decimal, systolic, diastolic *int) {
		metrics = append(metrics, entity.HealthMetric{
			ID:         uuid.MustParse(fmt.Sprintf("6f1d2c3a-0003-4000-8000-%012d", seq)),
			PatientID:  PatientJohnID,
			Type:       t,
			Value:      value,
			Unit:       t.DefaultUnit(),
			RecordedOn: today.AddDate(0, 0, idx-(n-1)),
			Systolic:   systolic,
			Diastolic:  diastolic,
			CreatedAt:  now,
		})
	}

	seq := 1
	for i := 0; i < n; i++ {
		sys, dia := systolicSeries[i], diastolicSeries[i]
		add(i, seq, entity.MetricHeartRate, decimal.NewFromFloat(heartRateSeries[i]), nil, nil)
		add(i, seq+1, entity.MetricBloodPressure, decimal.NewFromInt(int64(sys)), &sys, &dia)
		add(i, seq+2, entity.MetricGlucose, decimal.NewFromFloat(glucoseSeries[i]), nil, nil)
		add(i, seq+3, entity.MetricWeight, decimal.NewFromFloat(weightSeries[i]), nil, nil)
		seq += 4
	}
	return metrics
}

func medications(today time.Time) []entity.Medication {
	return []entity.Medication{
		{
			ID:        uuid.MustParse("6f1d2c3a-0004-4000-8000-000000000001"),
			PatientID: PatientJohnID,
			Name:      "Lisinopril",
			Dosage:    "10mg",
			Frequency: "Once daily",
			StartDate: today.AddDate(0, 0, -20),
			EndDate:   today.AddDate(0, 0, 40),
			Taken:     true,
			NextDose:  today.AddDate(0, 0, 1).Add(8 * time.Hour),
		},
		{
			ID:        uuid.MustParse("6f1d2c3a-0004-4000-8000-000000000002"),
			PatientID: PatientJohnID,
			Name:      "Metformin",
			Dosage:    "500mg",
			Frequency: "Twice daily",
			StartDate: today.AddDate(0, 0, -20),
			EndDate:   today.AddDate(0, 0, 130),
			Taken:     false,
			NextDose:  today.Add(20 * time.Hour),
		},
	}
}

func notifications(today, now time.Time) []entity.Notification {
	return []entity.Notification{
		{
			ID:        uuid.MustParse("6f1d2c3a-0005-4000-8000-000000000001"),
			UserID:    PatientJohnID,
			Type:      entity.NotificationTypeMedication,
			Title:     "Medication Reminder",
			Message:   "Time to take your Metformin (500mg)",
			Timestamp: now.Add(-30 * time.Minute),
			Priority:  entity.PriorityHigh,
		},
		{
			ID:        uuid.MustParse("6f1d2c3a-0005-4000-8000-000000000002"),
			UserID:    PatientJohnID,
			Type:      entity.NotificationTypeAppointment,
			Title:     "Upcoming Appointment",
			Message:   fmt.Sprintf("You have an appointment with Dr. Sarah Johnson on %s at 10:00 AM", today.AddDate(0, 0, 5).Format(entity.DateLayout)),
			Timestamp: now.Add(-3 * time.Hour),
			Priority:  entity.PriorityMedium,
		},
	}
}
