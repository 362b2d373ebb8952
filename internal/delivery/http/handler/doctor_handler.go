package handler

import (
	"net/http"

	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
)

type DoctorHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDoctorHandler(directoryUsecase usecase.DirectoryUsecase) *DoctorHandler {
	return &DoctorHandler{directoryUsecase: directoryUsecase}
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directoryUsecase.Doctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
