package worker

import (
	"context"
	"io"
	"testing"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/repository/memory"
	"go-healthcare-portal/internal/seed"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var seedTime = time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)

type fixture struct {
	worker *MedicationReminderWorker
	store  *memory.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ds, err := seed.BuildWithCost("password123", seedTime, bcrypt.MinCost)
	require.NoError(t, err)
	store := memory.NewSeededStore(ds)

	log := logrus.New()
	log.SetOutput(io.Discard)

	w := NewMedicationReminderWorker(
		memory.NewMedicationRepository(store),
		memory.NewNotificationPreferenceRepository(store),
		memory.NewNotificationRepository(store),
		nil,
		log,
		time.Hour,
	)
	return fixture{worker: w, store: store}
}

func (f fixture) medicationReminders(t *testing.T) []entity.Notification {
	t.Helper()
	list, err := memory.NewNotificationRepository(f.store).FindByUserID(context.Background(), seed.PatientJohnID, entity.NotificationFilterMedication)
	require.NoError(t, err)
	return list
}

func TestRunOnceNothingDue(t *testing.T) {
	f := newFixture(t)
	f.worker.now = func() time.Time { return seedTime }

	sent, err := f.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestRunOnceRemindsOncePerDose(t *testing.T) {
	f := newFixture(t)
	before := len(f.medicationReminders(t))
	f.worker.now = func() time.Time { return seedTime.Add(9 * time.Hour) }

	sent, err := f.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	reminders := f.medicationReminders(t)
	require.Len(t, reminders, before+1)
	assert.Equal(t, "Medication Reminder", reminders[0].Title)
	assert.Equal(t, entity.PriorityHigh, reminders[0].Priority)
	assert.Contains(t, reminders[0].Message, "Metformin")
	assert.False(t, reminders[0].Read)

	sent, err = f.worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestRunOnceRespectsPreference(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	prefs := memory.NewNotificationPreferenceRepository(f.store)

	pref := entity.DefaultNotificationPreference(seed.PatientJohnID)
	pref.Medication = false
	require.NoError(t, prefs.Save(ctx, pref))

	before := len(f.medicationReminders(t))
	f.worker.now = func() time.Time { return seedTime.Add(9 * time.Hour) }

	sent, err := f.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, f.medicationReminders(t), before)

	med, err := memory.NewMedicationRepository(f.store).FindByID(ctx, seedMetforminID(t, f))
	require.NoError(t, err)
	require.NotNil(t, med.LastRemindedAt)
}

// takenAfterFindRepo marks every due dose taken right after the worker reads it.
type takenAfterFindRepo struct {
	repository.MedicationRepository
	now time.Time
}

func (r *takenAfterFindRepo) FindDue(ctx context.Context, now time.Time) ([]entity.Medication, error) {
	due, err := r.MedicationRepository.FindDue(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, m := range due {
		taken := m
		taken.MarkTaken(r.now)
		if err := r.MedicationRepository.Update(ctx, &taken); err != nil {
			return nil, err
		}
	}
	return due, nil
}

func TestRunOnceKeepsDoseTakenDuringScan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := seedTime.Add(9 * time.Hour)
	meds := memory.NewMedicationRepository(f.store)
	f.worker.medicationRepo = &takenAfterFindRepo{MedicationRepository: meds, now: now}
	f.worker.now = func() time.Time { return now }

	before := len(f.medicationReminders(t))
	sent, err := f.worker.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, f.medicationReminders(t), before)

	med, err := meds.FindByID(ctx, seedMetforminID(t, f))
	require.NoError(t, err)
	assert.True(t, med.Taken)
	assert.True(t, med.NextDose.After(now))
	assert.Nil(t, med.LastRemindedAt)
}

func TestStartAndStop(t *testing.T) {
	f := newFixture(t)
	f.worker.now = func() time.Time { return seedTime.Add(9 * time.Hour) }

	f.worker.Start(context.Background())
	notifications := memory.NewNotificationRepository(f.store)
	assert.Eventually(t, func() bool {
		list, err := notifications.FindByUserID(context.Background(), seed.PatientJohnID, entity.NotificationFilterMedication)
		return err == nil && len(list) == 2
	}, time.Second, 10*time.Millisecond)

	f.worker.Stop()
	f.worker.Stop()
}

func seedMetforminID(t *testing.T, f fixture) uuid.UUID {
	t.Helper()
	list, err := memory.NewMedicationRepository(f.store).FindByPatientID(context.Background(), seed.PatientJohnID)
	require.NoError(t, err)
	for _, m := range list {
		if m.Name == "Metformin" {
			return m.ID
		}
	}
	t.Fatal("metformin not seeded")
	return uuid.Nil
}
