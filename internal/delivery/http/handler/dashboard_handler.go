package handler

import (
	"net/http"

	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// Get picks the patient or doctor dashboard from the caller's role.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var (
		data interface{}
		err  error
	)
	if actor.IsDoctor() {
		data, err = h.dashboardUsecase.Doctor(r.Context(), actor)
	} else {
		data, err = h.dashboardUsecase.Patient(r.Context(), actor)
	}
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to load dashboard")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", data)
}
