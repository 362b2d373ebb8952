package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("portal", reg)

	m.AppointmentBooked()
	m.MessageSent()
	m.MessageSent()
	m.AutoReplySent()
	m.ReminderSent()
	m.StreamOpened()
	m.StreamOpened()
	m.StreamClosed()
	m.ObserveRequest(http.MethodGet, "/api/v1/health", http.StatusOK, 3*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.appointmentsBooked))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.messagesSent.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messagesSent.WithLabelValues("auto_reply")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remindersSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.streamClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/health", "200")))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.AppointmentBooked()
	m.MessageSent()
	m.AutoReplySent()
	m.ReminderSent()
	m.StreamOpened()
	m.StreamClosed()
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}

func TestHandlerExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("portal", reg)
	m.AppointmentBooked()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "portal_appointments_booked_total 1"))
}
