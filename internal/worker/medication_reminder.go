package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MedicationReminderWorker turns due doses into high priority notifications.
type MedicationReminderWorker struct {
	medicationRepo   repository.MedicationRepository
	prefRepo         repository.NotificationPreferenceRepository
	notificationRepo repository.NotificationRepository
	metrics          *metrics.Metrics
	log              *logrus.Logger
	interval         time.Duration
	now              func() time.Time

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewMedicationReminderWorker(
	medicationRepo repository.MedicationRepository,
	prefRepo repository.NotificationPreferenceRepository,
	notificationRepo repository.NotificationRepository,
	m *metrics.Metrics,
	log *logrus.Logger,
	interval time.Duration,
) *MedicationReminderWorker {
	return &MedicationReminderWorker{
		medicationRepo:   medicationRepo,
		prefRepo:         prefRepo,
		notificationRepo: notificationRepo,
		metrics:          m,
		log:              log,
		interval:         interval,
		now:              func() time.Time { return time.Now().UTC() },
		stopChan:         make(chan struct{}),
	}
}

// Start runs one scan right away and then one per interval until Stop or ctx
// is done.
func (w *MedicationReminderWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.scan(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stopChan:
				return
			case <-ticker.C:
				w.scan(ctx)
			}
		}
	}()
	w.log.Infof("Medication reminder worker started (interval %s)", w.interval)
}

func (w *MedicationReminderWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("Medication reminder worker stopped")
	})
}

func (w *MedicationReminderWorker) scan(ctx context.Context) {
	sent, err := w.RunOnce(ctx)
	if err != nil {
		w.log.Warnf("Failed to send medication reminders: %+v", err)
		return
	}
	if sent > 0 {
		w.log.Infof("Sent %d medication reminders", sent)
	}
}

// RunOnce sends the reminders due now and returns how many were created.
func (w *MedicationReminderWorker) RunOnce(ctx context.Context) (int, error) {
	now := w.now()

	due, err := w.medicationRepo.FindDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find due medications: %w", err)
	}

	prefs := make(map[uuid.UUID]bool)
	sent := 0
	for i := range due {
		med := &due[i]
		if !med.NeedsReminder(now) {
			continue
		}

		enabled, ok := prefs[med.PatientID]
		if !ok {
			pref, err := w.prefRepo.FindByUserID(ctx, med.PatientID)
			if err != nil {
				return sent, fmt.Errorf("find preferences for %s: %w", med.PatientID, err)
			}
			if pref == nil {
				pref = entity.DefaultNotificationPreference(med.PatientID)
			}
			enabled = pref.Medication
			prefs[med.PatientID] = enabled
		}

		// A due dose starts a new period: the previous one was taken, this
		// one is not. The dose counts as handled even when reminders are off.
		// A dose taken since FindDue has moved NextDose, so nothing changes.
		marked, err := w.medicationRepo.MarkReminded(ctx, med.ID, med.NextDose, now)
		if err != nil {
			return sent, fmt.Errorf("update medication %s: %w", med.ID, err)
		}
		if !marked || !enabled {
			continue
		}

		notification := &entity.Notification{
			ID:        uuid.New(),
			UserID:    med.PatientID,
			Type:      entity.NotificationTypeMedication,
			Title:     "Medication Reminder",
			Message:   fmt.Sprintf("Time to take %s (%s)", med.Name, med.Dosage),
			Timestamp: now,
			Priority:  entity.PriorityHigh,
		}
		if err := w.notificationRepo.Create(ctx, notification); err != nil {
			return sent, fmt.Errorf("create reminder for %s: %w", med.ID, err)
		}

		w.metrics.ReminderSent()
		sent++
	}

	return sent, nil
}
