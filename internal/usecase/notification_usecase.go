package usecase

import (
	"context"
	"errors"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidFilter        = errors.New("filter must be one of all, unread, medication, appointment, alert")
)

type NotificationUsecase interface {
	List(ctx context.Context, actor entity.Actor, query dto.NotificationListQuery) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, actor entity.Actor) (*dto.MarkAllReadResponse, error)
	Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error
	UnreadCount(ctx context.Context, actor entity.Actor) (*dto.UnreadCountResponse, error)
}

type notificationUsecase struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	now              Clock
}

func NewNotificationUsecase(log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		log:              log,
		notificationRepo: notificationRepo,
		now:              systemClock,
	}
}

// List pages through the filtered notifications. Total counts every match.
func (u *notificationUsecase) List(ctx context.Context, actor entity.Actor, query dto.NotificationListQuery) (*dto.NotificationListResponse, error) {
	filter := entity.NotificationFilter(query.Filter)
	if filter == "" {
		filter = entity.NotificationFilterAll
	}
	if !filter.IsValid() {
		return nil, ErrInvalidFilter
	}

	notifications, err := u.notificationRepo.FindByUserID(ctx, actor.ID, filter)
	if err != nil {
		u.log.Warnf("Failed to find notifications: %+v", err)
		return nil, err
	}

	unread, err := u.notificationRepo.CountUnread(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications: %+v", err)
		return nil, err
	}

	total := len(notifications)
	if query.Limit > 0 {
		page := query.Page
		if page < 1 {
			page = 1
		}
		start := total
		if page-1 <= total/query.Limit {
			start = (page - 1) * query.Limit
		}
		end := total
		if query.Limit < total-start {
			end = start + query.Limit
		}
		notifications = notifications[start:end]
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications, u.now()),
		Total:         int64(total),
		UnreadCount:   unread,
	}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, actor entity.Actor, id uuid.UUID) (*dto.NotificationResponse, error) {
	notification, err := u.findOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !notification.Read {
		notification.MarkRead()
		if err := u.notificationRepo.Update(ctx, notification); err != nil {
			u.log.Warnf("Failed to update notification: %+v", err)
			return nil, err
		}
	}

	res := converter.NotificationToResponse(notification, u.now())
	return &res, nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, actor entity.Actor) (*dto.MarkAllReadResponse, error) {
	updated, err := u.notificationRepo.MarkAllRead(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to mark notifications read: %+v", err)
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if _, err := u.findOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := u.notificationRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete notification: %+v", err)
		return err
	}
	return nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, actor entity.Actor) (*dto.UnreadCountResponse, error) {
	count, err := u.notificationRepo.CountUnread(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications: %+v", err)
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

// findOwned hides other users' notifications behind not found.
func (u *notificationUsecase) findOwned(ctx context.Context, actor entity.Actor, id uuid.UUID) (*entity.Notification, error) {
	notification, err := u.notificationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find notification: %+v", err)
		return nil, err
	}
	if notification == nil || notification.UserID != actor.ID {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}
