// Package memory keeps every record in process. It is the default store and
// loses all changes on restart.
package memory

import (
	"sort"
	"sync"

	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/seed"

	"github.com/google/uuid"
)

// Store is shared by all in-memory repositories. Records are copied in and
// out so callers never alias stored values.
type Store struct {
	mu sync.RWMutex

	users         map[uuid.UUID]entity.User
	preferences   map[uuid.UUID]entity.NotificationPreference
	appointments  map[uuid.UUID]entity.Appointment
	messages      []entity.Message
	metrics       []entity.HealthMetric
	medications   map[uuid.UUID]entity.Medication
	notifications map[uuid.UUID]entity.Notification
	auditLogs     []entity.AuditLog
	auditSeq      int64
}

func NewStore() *Store {
	return &Store{
		users:         make(map[uuid.UUID]entity.User),
		preferences:   make(map[uuid.UUID]entity.NotificationPreference),
		appointments:  make(map[uuid.UUID]entity.Appointment),
		medications:   make(map[uuid.UUID]entity.Medication),
		notifications: make(map[uuid.UUID]entity.Notification),
	}
}

// NewSeededStore returns a store preloaded with the dataset.
func NewSeededStore(ds *seed.Dataset) *Store {
	s := NewStore()
	for _, u := range ds.Users {
		s.users[u.ID] = u
	}
	for _, p := range ds.Preferences {
		s.preferences[p.UserID] = p
	}
	for _, a := range ds.Appointments {
		s.appointments[a.ID] = a
	}
	s.messages = append(s.messages, ds.Messages...)
	s.metrics = append(s.metrics, ds.HealthMetrics...)
	for _, m := range ds.Medications {
		s.medications[m.ID] = m
	}
	for _, n := range ds.Notifications {
		s.notifications[n.ID] = n
	}
	return s
}

func sortAppointments(list []entity.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].Time < list[j].Time
	})
}
