package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimals(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name   string
		values []decimal.Decimal
		want   Trend
	}{
		{"heart rate series", decimals(72, 75, 71, 68, 74, 76, 73), TrendUp},
		{"glucose series", decimals(95, 102, 88, 94, 91, 98, 96), TrendUp},
		{"weight series", decimals(75.2, 75.0, 74.8, 74.9, 75.1, 75.3, 75.0), TrendUp},
		{"falling", decimals(10, 10, 10, 5, 5, 5), TrendDown},
		{"equal means count as down", decimals(1, 2, 3, 3, 2, 1), TrendDown},
		{"too short", decimals(1, 2, 3, 4, 5), TrendFlat},
		{"empty", nil, TrendFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrend(tt.values))
		})
	}
}

func TestChartBars(t *testing.T) {
	bars := ChartBars(decimals(60, 70, 80))
	assert.Equal(t, []float64{10, 50, 100}, bars)

	flat := ChartBars(decimals(5, 5, 5))
	assert.Equal(t, []float64{10, 10, 10}, flat)

	assert.Empty(t, ChartBars(nil))
}
