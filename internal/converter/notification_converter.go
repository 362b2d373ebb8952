package converter

import (
	"fmt"
	"time"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
)

// TimeAgo renders "Just now" under an hour, "Nh ago" under a day and the
// date after that.
func TimeAgo(ts, now time.Time) string {
	hours := int(now.Sub(ts).Hours())
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	default:
		return ts.UTC().Format(entity.DateLayout)
	}
}

func NotificationToResponse(n *entity.Notification, now time.Time) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Timestamp: n.Timestamp,
		TimeAgo:   TimeAgo(n.Timestamp, now),
		Read:      n.Read,
		Priority:  string(n.Priority),
	}
}

func NotificationsToResponses(list []entity.Notification, now time.Time) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(list))
	for i := range list {
		responses[i] = NotificationToResponse(&list[i], now)
	}
	return responses
}
