package handler

import (
	"net/http"

	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
)

type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
}

func NewMedicationHandler(medicationUsecase usecase.MedicationUsecase) *MedicationHandler {
	return &MedicationHandler{medicationUsecase: medicationUsecase}
}

func (h *MedicationHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrMedicationNotFound:
		response.NotFound(w, "Medication not found")
	case usecase.ErrForbidden:
		response.Forbidden(w, "Medication does not belong to you")
	case usecase.ErrPatientOnly:
		response.Forbidden(w, "Medications are available to patients only")
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	medications, err := h.medicationUsecase.List(r.Context(), actor)
	if err != nil {
		h.writeError(w, err, "Failed to get medications")
		return
	}

	response.Success(w, http.StatusOK, "Medications retrieved successfully", medications)
}

func (h *MedicationHandler) Due(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	medications, err := h.medicationUsecase.Due(r.Context(), actor)
	if err != nil {
		h.writeError(w, err, "Failed to get due medications")
		return
	}

	response.Success(w, http.StatusOK, "Due medications retrieved successfully", medications)
}

func (h *MedicationHandler) MarkTaken(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id", "medication ID")
	if !ok {
		return
	}

	medication, err := h.medicationUsecase.MarkTaken(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, err, "Failed to mark medication as taken")
		return
	}

	response.Success(w, http.StatusOK, "Medication marked as taken", medication)
}
