package converter

import (
	"time"

	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
)

func HealthMetricToResponse(m *entity.HealthMetric) dto.HealthMetricResponse {
	return dto.HealthMetricResponse{
		ID:         m.ID,
		Type:       string(m.Type),
		Value:      m.Value,
		Unit:       m.Unit,
		Display:    m.DisplayValue(),
		RecordedOn: m.RecordedOn.Format(entity.DateLayout),
		Systolic:   m.Systolic,
		Diastolic:  m.Diastolic,
		CreatedAt:  m.CreatedAt,
	}
}

func MetricCardToResponse(m *entity.HealthMetric, trend entity.Trend) dto.MetricCardResponse {
	return dto.MetricCardResponse{
		Type:       string(m.Type),
		Title:      m.Type.Title(),
		Value:      m.DisplayValue(),
		Unit:       m.Unit,
		RecordedOn: m.RecordedOn.Format(entity.DateLayout),
		Trend:      string(trend),
	}
}

func MetricPointToResponse(m *entity.HealthMetric) dto.MetricPointResponse {
	return dto.MetricPointResponse{
		Date:      m.RecordedOn.Format(entity.DateLayout),
		Value:     m.Value,
		Systolic:  m.Systolic,
		Diastolic: m.Diastolic,
	}
}

func MedicationToResponse(m *entity.Medication, now time.Time) dto.MedicationResponse {
	return dto.MedicationResponse{
		ID:        m.ID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartDate: m.StartDate.Format(entity.DateLayout),
		EndDate:   m.EndDate.Format(entity.DateLayout),
		Taken:     m.Taken,
		NextDose:  m.NextDose,
		Active:    m.IsActive(now),
	}
}

func MedicationsToResponses(list []entity.Medication, now time.Time) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(list))
	for i := range list {
		responses[i] = MedicationToResponse(&list[i], now)
	}
	return responses
}
