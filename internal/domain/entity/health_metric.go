package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MetricType string

const (
	MetricHeartRate     MetricType = "heart_rate"
	MetricBloodPressure MetricType = "blood_pressure"
	MetricGlucose       MetricType = "glucose"
	MetricWeight        MetricType = "weight"
)

// AllMetricTypes is the display order of the metric cards.
var AllMetricTypes = []MetricType{MetricHeartRate, MetricBloodPressure, MetricGlucose, MetricWeight}

func (t MetricType) IsValid() bool {
	switch t {
	case MetricHeartRate, MetricBloodPressure, MetricGlucose, MetricWeight:
		return true
	}
	return false
}

func (t MetricType) DefaultUnit() string {
	switch t {
	case MetricHeartRate:
		return "bpm"
	case MetricBloodPressure:
		return "mmHg"
	case MetricGlucose:
		return "mg/dL"
	case MetricWeight:
		return "kg"
	}
	return ""
}

func (t MetricType) Title() string {
	switch t {
	case MetricHeartRate:
		return "Heart Rate"
	case MetricBloodPressure:
		return "Blood Pressure"
	case MetricGlucose:
		return "Glucose"
	case MetricWeight:
		return "Weight"
	}
	return string(t)
}

// HealthMetric is one reading. Blood pressure keeps the systolic value in Value.
type HealthMetric struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	Type       MetricType      `gorm:"type:varchar(20);not null;index" json:"type"`
	Value      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	Unit       string          `gorm:"type:varchar(10);not null" json:"unit"`
	RecordedOn time.Time       `gorm:"type:date;not null;index" json:"recorded_on"`
	Systolic   *int            `json:"systolic,omitempty"`
	Diastolic  *int            `json:"diastolic,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (HealthMetric) TableName() string {
	return "health_metrics"
}

// DisplayValue renders "120/80 mmHg" for blood pressure and "72 bpm" otherwise.
func (m *HealthMetric) DisplayValue() string {
	if m.Type == MetricBloodPressure && m.Systolic != nil && m.Diastolic != nil {
		return fmt.Sprintf("%d/%d %s", *m.Systolic, *m.Diastolic, m.Unit)
	}
	return fmt.Sprintf("%s %s", m.Value.String(), m.Unit)
}

// MetricSelection is the analytics metric filter.
type MetricSelection string

const (
	SelectionAll     MetricSelection = "all"
	SelectionVitals  MetricSelection = "vitals"
	SelectionWeight  MetricSelection = "weight"
	SelectionGlucose MetricSelection = "glucose"
)

// Types returns the metric types covered by the selection, nil if unknown.
func (s MetricSelection) Types() []MetricType {
	switch s {
	case "", SelectionAll:
		return AllMetricTypes
	case SelectionVitals:
		return []MetricType{MetricHeartRate, MetricBloodPressure}
	case SelectionWeight:
		return []MetricType{MetricWeight}
	case SelectionGlucose:
		return []MetricType{MetricGlucose}
	}
	return nil
}

// TimeRange is the analytics window ending at the newest reading.
type TimeRange string

const (
	Range7Days  TimeRange = "7d"
	Range30Days TimeRange = "30d"
	Range90Days TimeRange = "90d"
	Range1Year  TimeRange = "1y"
)

// Days is the window length, 0 if unknown.
func (r TimeRange) Days() int {
	switch r {
	case "", Range7Days:
		return 7
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	case Range1Year:
		return 365
	}
	return 0
}

// HealthMetricFilter narrows metric queries. Zero fields do not filter.
type HealthMetricFilter struct {
	PatientID uuid.UUID
	Types     []MetricType
	From      time.Time
}

func (f HealthMetricFilter) Matches(m *HealthMetric) bool {
	if f.PatientID != uuid.Nil && m.PatientID != f.PatientID {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if m.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.From.IsZero() && m.RecordedOn.Before(f.From) {
		return false
	}
	return true
}
