package http

import (
	"net/http"

	"go-healthcare-portal/internal/delivery/http/handler"
	"go-healthcare-portal/internal/delivery/http/middleware"
	"go-healthcare-portal/pkg/metrics"
	"go-healthcare-portal/pkg/response"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Doctor       *handler.DoctorHandler
	Dashboard    *handler.DashboardHandler
	Appointment  *handler.AppointmentHandler
	Message      *handler.MessageHandler
	HealthMetric *handler.HealthMetricHandler
	Medication   *handler.MedicationHandler
	Notification *handler.NotificationHandler
	Profile      *handler.ProfileHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	rateLimiter    *middleware.RateLimiter
	metrics        *metrics.Metrics
	gatherer       prometheus.Gatherer
	log            *logrus.Logger
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimiter *middleware.RateLimiter,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		rateLimiter:    rateLimiter,
		metrics:        m,
		gatherer:       gatherer,
		log:            log,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	r.router.Use(middleware.RequestLogger(r.log, r.metrics))

	if r.gatherer != nil {
		r.router.Handle("/metrics", metrics.Handler(r.gatherer)).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.rateLimiter.Limit)
	auth.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// The stream authenticates on its own so browsers can pass ?token=.
	api.Handle("/messages/stream", r.authMiddleware.AuthenticateStream(http.HandlerFunc(h.Message.Stream))).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	protected.HandleFunc("/doctors", h.Doctor.List).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard", h.Dashboard.Get).Methods(http.MethodGet)

	// Appointments
	protected.HandleFunc("/appointments", h.Appointment.List).Methods(http.MethodGet)
	protected.Handle("/appointments", middleware.RequirePatient(http.HandlerFunc(h.Appointment.Create))).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/calendar", h.Appointment.Calendar).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/slots", h.Appointment.Slots).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", h.Appointment.Cancel).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/complete", h.Appointment.Complete).Methods(http.MethodPut)

	// Messages
	protected.HandleFunc("/messages/contacts", h.Message.Contacts).Methods(http.MethodGet)
	protected.HandleFunc("/messages", h.Message.Send).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{userId}", h.Message.Conversation).Methods(http.MethodGet)
	protected.HandleFunc("/messages/{userId}/read", h.Message.MarkRead).Methods(http.MethodPut)

	// Health metrics and medications (patient only)
	patient := protected.NewRoute().Subrouter()
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/health-metrics", h.HealthMetric.Summary).Methods(http.MethodGet)
	patient.HandleFunc("/health-metrics", h.HealthMetric.Record).Methods(http.MethodPost)
	patient.HandleFunc("/health-metrics/latest", h.HealthMetric.Latest).Methods(http.MethodGet)
	patient.HandleFunc("/health-metrics/export", h.HealthMetric.Export).Methods(http.MethodGet)
	patient.HandleFunc("/medications", h.Medication.List).Methods(http.MethodGet)
	patient.HandleFunc("/medications/due", h.Medication.Due).Methods(http.MethodGet)
	patient.HandleFunc("/medications/{id}/taken", h.Medication.MarkTaken).Methods(http.MethodPut)

	// Notifications
	protected.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/unread-count", h.Notification.UnreadCount).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", h.Notification.MarkAllRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{id}/read", h.Notification.MarkRead).Methods(http.MethodPut)
	protected.HandleFunc("/notifications/{id}", h.Notification.Delete).Methods(http.MethodDelete)

	// Profile
	protected.HandleFunc("/profile", h.Profile.Get).Methods(http.MethodGet)
	protected.HandleFunc("/profile", h.Profile.Update).Methods(http.MethodPut)
	protected.HandleFunc("/profile/notifications", h.Profile.GetPreferences).Methods(http.MethodGet)
	protected.HandleFunc("/profile/notifications", h.Profile.UpdatePreferences).Methods(http.MethodPut)
	protected.HandleFunc("/profile/password", h.Profile.ChangePassword).Methods(http.MethodPut)
	protected.HandleFunc("/profile/activity", h.Profile.Activity).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r.router
}

// Handler wraps the routes in CORS so preflight requests never reach mux's
// method matching.
func (r *Router) Handler() http.Handler {
	return r.corsMiddleware.Handle(r.Setup())
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}
