package handler

import (
	"fmt"
	"net/http"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/usecase"
	"go-healthcare-portal/pkg/response"
	"go-healthcare-portal/pkg/validator"

	"github.com/sirupsen/logrus"
)

type HealthMetricHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
	validator        *validator.CustomValidator
	log              *logrus.Logger
}

func NewHealthMetricHandler(analyticsUsecase usecase.AnalyticsUsecase, validator *validator.CustomValidator, log *logrus.Logger) *HealthMetricHandler {
	return &HealthMetricHandler{
		analyticsUsecase: analyticsUsecase,
		validator:        validator,
		log:              log,
	}
}

func (h *HealthMetricHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientOnly:
		response.Forbidden(w, "Health metrics are available to patients only")
	case usecase.ErrInvalidRange, usecase.ErrInvalidSelection, usecase.ErrInvalidMetricType,
		usecase.ErrMetricValueRequired, usecase.ErrBloodPressureMissing, usecase.ErrInvalidMetricValue,
		usecase.ErrInvalidDateFormat:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *HealthMetricHandler) parseQuery(w http.ResponseWriter, r *http.Request) (dto.AnalyticsQuery, bool) {
	query := dto.AnalyticsQuery{
		Range:   r.URL.Query().Get("range"),
		Metrics: r.URL.Query().Get("metrics"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return query, false
	}
	return query, true
}

// Summary returns the chart series for ?range=7d|30d|90d|1y&metrics=all|vitals|weight|glucose.
func (h *HealthMetricHandler) Summary(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.analyticsUsecase.Summary(r.Context(), actor, query)
	if err != nil {
		h.writeError(w, err, "Failed to get health metrics")
		return
	}

	response.Success(w, http.StatusOK, "Health metrics retrieved successfully", summary)
}

func (h *HealthMetricHandler) Latest(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	cards, err := h.analyticsUsecase.Latest(r.Context(), actor)
	if err != nil {
		h.writeError(w, err, "Failed to get latest health metrics")
		return
	}

	response.Success(w, http.StatusOK, "Latest health metrics retrieved successfully", cards)
}

func (h *HealthMetricHandler) Export(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	rows, err := h.analyticsUsecase.Export(r.Context(), actor, query)
	if err != nil {
		h.writeError(w, err, "Failed to export health metrics")
		return
	}

	rangeName := query.Range
	if rangeName == "" {
		rangeName = "7d"
	}
	if err := response.CSV(w, fmt.Sprintf("health-metrics-%s.csv", rangeName), rows); err != nil {
		h.log.Warnf("Failed to write health metrics export: %+v", err)
	}
}

func (h *HealthMetricHandler) Record(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req dto.RecordMetricRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	metric, err := h.analyticsUsecase.Record(r.Context(), actor, &req)
	if err != nil {
		h.writeError(w, err, "Failed to record health metric")
		return
	}

	response.Success(w, http.StatusCreated, "Health metric recorded successfully", metric)
}
