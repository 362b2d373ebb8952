package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type RecordMetricRequest struct {
	Type      string           `json:"type" validate:"required,oneof=heart_rate blood_pressure glucose weight"`
	Value     *decimal.Decimal `json:"value"`
	Unit      string           `json:"unit" validate:"omitempty,max=10"`
	Systolic  *int             `json:"systolic" validate:"omitempty,gt=0,lte=300"`
	Diastolic *int             `json:"diastolic" validate:"omitempty,gt=0,lte=200"`
	Date      string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type AnalyticsQuery struct {
	Range   string `validate:"omitempty,oneof=7d 30d 90d 1y"`
	Metrics string `validate:"omitempty,oneof=all vitals weight glucose"`
}

// Response DTOs

type HealthMetricResponse struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	Unit       string          `json:"unit"`
	Display    string          `json:"display"`
	RecordedOn string          `json:"recorded_on"`
	Systolic   *int            `json:"systolic,omitempty"`
	Diastolic  *int            `json:"diastolic,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MetricCardResponse is the latest reading of one metric type.
type MetricCardResponse struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Value      string `json:"value"`
	Unit       string `json:"unit"`
	RecordedOn string `json:"recorded_on"`
	Trend      string `json:"trend"`
}

type MetricPointResponse struct {
	Date      string          `json:"date"`
	Value     decimal.Decimal `json:"value"`
	Systolic  *int            `json:"systolic,omitempty"`
	Diastolic *int            `json:"diastolic,omitempty"`
}

type MetricSeriesResponse struct {
	Type   string                `json:"type"`
	Title  string                `json:"title"`
	Unit   string                `json:"unit"`
	Latest string                `json:"latest"`
	Trend  string                `json:"trend"`
	Points []MetricPointResponse `json:"points"`
	Bars   []float64             `json:"bars"`
}

type AnalyticsSummaryResponse struct {
	Range   string                 `json:"range"`
	Metrics string                 `json:"metrics"`
	From    string                 `json:"from,omitempty"`
	To      string                 `json:"to,omitempty"`
	Series  []MetricSeriesResponse `json:"series"`
}
