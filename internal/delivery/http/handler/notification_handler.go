package handler

import (
	"net/http"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
	"go-healthcare-portal/pkg/validator"
)

const (
	defaultNotificationPage  = 1
	defaultNotificationLimit = 20
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, validator *validator.CustomValidator) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		validator:           validator,
	}
}

// List supports ?filter=all|unread|medication|appointment|alert&page=&limit=.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	page, err := queryInt(r, "page", defaultNotificationPage)
	if err != nil {
		response.BadRequest(w, "Invalid page")
		return
	}
	limit, err := queryInt(r, "limit", defaultNotificationLimit)
	if err != nil {
		response.BadRequest(w, "Invalid limit")
		return
	}

	query := dto.NotificationListQuery{
		Filter: r.URL.Query().Get("filter"),
		Page:   page,
		Limit:  limit,
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.notificationUsecase.List(r.Context(), actor, query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidFilter:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to get notifications")
		}
		return
	}

	totalPages := int((result.Total + int64(limit) - 1) / int64(limit))
	response.SuccessWithMeta(w, http.StatusOK, "Notifications retrieved successfully", result, &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      result.Total,
		TotalPages: totalPages,
	})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	count, err := h.notificationUsecase.UnreadCount(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to count unread notifications")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", count)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "notification ID")
	if !ok {
		return
	}

	notification, err := h.notificationUsecase.MarkRead(r.Context(), actor, id)
	if err != nil {
		switch err {
		case usecase.ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		default:
			response.InternalServerError(w, "Failed to mark notification as read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", notification)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	result, err := h.notificationUsecase.MarkAllRead(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to mark notifications as read")
		return
	}

	response.Success(w, http.StatusOK, "All notifications marked as read", result)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "notification ID")
	if !ok {
		return
	}

	if err := h.notificationUsecase.Delete(r.Context(), actor, id); err != nil {
		switch err {
		case usecase.ErrNotificationNotFound:
			response.NotFound(w, "Notification not found")
		default:
			response.InternalServerError(w, "Failed to delete notification")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification deleted successfully", nil)
}
