package usecase

import (
	"context"
	"strings"
	"time"

	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
)

// Clock returns the current time. Usecases take one so tests can pin "today".
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// userNames resolves display names for the given ids. Unknown ids are skipped.
func userNames(ctx context.Context, userRepo repository.UserRepository, ids ...uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	users, err := userRepo.FindByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func appointmentParticipants(list []entity.Appointment) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(list)*2)
	for _, a := range list {
		ids = append(ids, a.PatientID, a.DoctorID)
	}
	return ids
}

func parseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(entity.DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}
