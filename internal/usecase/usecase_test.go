package usecase

import (
	"io"
	"testing"
	"time"

	"go-healthcare-portal/config"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/repository/memory"
	"go-healthcare-portal/internal/seed"
	"go-healthcare-portal/internal/service"
	"go-healthcare-portal/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testNow is a Monday. Seeded appointments fall on the 25th, the 28th, the
// 20th (Emma) and the 21st of December (completed).
var testNow = time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)

var (
	john    = entity.Actor{ID: seed.PatientJohnID, Role: entity.RolePatient}
	emma    = entity.Actor{ID: seed.PatientEmmaID, Role: entity.RolePatient}
	sarah   = entity.Actor{ID: seed.DoctorSarahID, Role: entity.RoleDoctor}
	michael = entity.Actor{ID: seed.DoctorMichaelID, Role: entity.RoleDoctor}
)

type testEnv struct {
	store         *memory.Store
	jwtService    *jwt.JWTService
	tokenStore    service.TokenStore
	hub           *service.ChatHub
	autoReplier   *service.AutoReplier
	auth          AuthUsecase
	appointments  AppointmentUsecase
	messages      MessageUsecase
	analytics     AnalyticsUsecase
	medications   MedicationUsecase
	notifications NotificationUsecase
	profile       ProfileUsecase
	dashboard     DashboardUsecase
	directory     DirectoryUsecase
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixedClock() time.Time {
	return testNow
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithReplyDelay(t, 0)
}

func newTestEnvWithReplyDelay(t *testing.T, replyDelay time.Duration) *testEnv {
	t.Helper()

	ds, err := seed.BuildWithCost("password123", testNow, bcrypt.MinCost)
	require.NoError(t, err)

	log := testLogger()
	store := memory.NewSeededStore(ds)

	userRepo := memory.NewUserRepository(store)
	prefRepo := memory.NewNotificationPreferenceRepository(store)
	appointmentRepo := memory.NewAppointmentRepository(store)
	messageRepo := memory.NewMessageRepository(store)
	metricRepo := memory.NewHealthMetricRepository(store)
	medicationRepo := memory.NewMedicationRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	auditRepo := memory.NewAuditLogRepository(store)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	tokenStore := service.NewMemoryTokenStore(time.Minute)
	auditService := service.NewAuditService(log, auditRepo)

	slotGuard := service.NewSlotGuard(nil, log)
	hub := service.NewChatHub(log)
	autoReplier := service.NewAutoReplier(replyDelay, "Thanks for your message.", messageRepo, hub, nil, log)
	t.Cleanup(func() {
		autoReplier.Stop()
		slotGuard.Stop()
		hub.Close()
	})

	auth := NewAuthUsecase(log, userRepo, prefRepo, jwtService, tokenStore, auditService)
	auth.(*authUsecase).bcryptCost = bcrypt.MinCost

	appointments := NewAppointmentUsecase(log, appointmentRepo, userRepo, prefRepo, notificationRepo, slotGuard, auditService, nil)
	appointments.(*appointmentUsecase).now = fixedClock

	messages := NewMessageUsecase(log, messageRepo, userRepo, appointmentRepo, hub, autoReplier, nil)
	messages.(*messageUsecase).now = fixedClock

	analytics := NewAnalyticsUsecase(log, metricRepo, auditService)
	analytics.(*analyticsUsecase).now = fixedClock

	medications := NewMedicationUsecase(log, medicationRepo, auditService)
	medications.(*medicationUsecase).now = fixedClock

	notifications := NewNotificationUsecase(log, notificationRepo)
	notifications.(*notificationUsecase).now = fixedClock

	profile := NewProfileUsecase(log, userRepo, prefRepo, auditRepo, tokenStore, auditService)
	profile.(*profileUsecase).bcryptCost = bcrypt.MinCost

	dashboard := NewDashboardUsecase(log, userRepo, appointmentRepo, messageRepo, notificationRepo, medications, analytics)
	dashboard.(*dashboardUsecase).now = fixedClock

	return &testEnv{
		store:         store,
		jwtService:    jwtService,
		tokenStore:    tokenStore,
		hub:           hub,
		autoReplier:   autoReplier,
		auth:          auth,
		appointments:  appointments,
		messages:      messages,
		analytics:     analytics,
		medications:   medications,
		notifications: notifications,
		profile:       profile,
		dashboard:     dashboard,
		directory:     NewDirectoryUsecase(log, userRepo),
	}
}

func day(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(entity.DateLayout)
}
