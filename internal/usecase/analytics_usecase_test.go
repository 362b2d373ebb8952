package usecase

import (
	"context"
	"testing"

	"go-healthcare-portal/internal/delivery/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestMetricCards(t *testing.T) {
	env := newTestEnv(t)

	cards, err := env.analytics.Latest(context.Background(), john)
	require.NoError(t, err)
	require.Len(t, cards, 4)

	assert.Equal(t, "heart_rate", cards[0].Type)
	assert.Equal(t, "blood_pressure", cards[1].Type)
	assert.Regexp(t, `^\d+/\d+ mmHg$`, cards[1].Value)
	assert.Equal(t, "glucose", cards[2].Type)
	assert.Equal(t, "96 mg/dL", cards[2].Value)
	assert.Equal(t, "up", cards[2].Trend)
	assert.Equal(t, day(0), cards[2].RecordedOn)

	_, err = env.analytics.Latest(context.Background(), sarah)
	assert.ErrorIs(t, err, ErrPatientOnly)

	cards, err = env.analytics.Latest(context.Background(), emma)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.analytics.Summary(ctx, john, dto.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "7d", res.Range)
	assert.Equal(t, "all", res.Metrics)
	assert.Equal(t, day(-6), res.From)
	assert.Equal(t, day(0), res.To)
	require.Len(t, res.Series, 4)
	for _, s := range res.Series {
		assert.Len(t, s.Points, 7)
		assert.Len(t, s.Bars, 7)
		for _, b := range s.Bars {
			assert.GreaterOrEqual(t, b, 10.0)
			assert.LessOrEqual(t, b, 100.0)
		}
	}

	res, err = env.analytics.Summary(ctx, john, dto.AnalyticsQuery{Range: "30d", Metrics: "vitals"})
	require.NoError(t, err)
	require.Len(t, res.Series, 2)
	assert.Equal(t, "heart_rate", res.Series[0].Type)
	assert.Equal(t, "blood_pressure", res.Series[1].Type)
	assert.NotNil(t, res.Series[1].Points[0].Diastolic)

	_, err = env.analytics.Summary(ctx, john, dto.AnalyticsQuery{Range: "2w"})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = env.analytics.Summary(ctx, john, dto.AnalyticsQuery{Metrics: "sleep"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)

	rows, err := env.analytics.Export(context.Background(), john, dto.AnalyticsQuery{Metrics: "weight"})
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"date", "type", "value", "unit", "systolic", "diastolic"}, rows[0])
	assert.Equal(t, "weight", rows[1][1])
	assert.Equal(t, "kg", rows[1][3])
	assert.Empty(t, rows[1][4])

	rows, err = env.analytics.Export(context.Background(), emma, dto.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRecordMetric(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	sys, dia := 118, 76
	res, err := env.analytics.Record(ctx, emma, &dto.RecordMetricRequest{Type: "blood_pressure", Systolic: &sys, Diastolic: &dia})
	require.NoError(t, err)
	assert.Equal(t, "118/76 mmHg", res.Display)
	assert.Equal(t, day(0), res.RecordedOn)

	value := decimal.RequireFromString("61.5")
	res, err = env.analytics.Record(ctx, emma, &dto.RecordMetricRequest{Type: "weight", Value: &value, Date: day(-1)})
	require.NoError(t, err)
	assert.Equal(t, "61.5 kg", res.Display)
	assert.Equal(t, day(-1), res.RecordedOn)

	cards, err := env.analytics.Latest(ctx, emma)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	_, err = env.analytics.Record(ctx, emma, &dto.RecordMetricRequest{Type: "blood_pressure", Systolic: &sys})
	assert.ErrorIs(t, err, ErrBloodPressureMissing)

	_, err = env.analytics.Record(ctx, emma, &dto.RecordMetricRequest{Type: "glucose"})
	assert.ErrorIs(t, err, ErrMetricValueRequired)

	zero := decimal.Zero
	_, err = env.analytics.Record(ctx, emma, &dto.RecordMetricRequest{Type: "glucose", Value: &zero})
	assert.ErrorIs(t, err, ErrInvalidMetricValue)

	_, err = env.analytics.Record(ctx, sarah, &dto.RecordMetricRequest{Type: "glucose", Value: &value})
	assert.ErrorIs(t, err, ErrPatientOnly)
}

func TestRecordedReadingBecomesLatest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	value := decimal.NewFromInt(150)
	res, err := env.analytics.Record(ctx, john, &dto.RecordMetricRequest{Type: "heart_rate", Value: &value})
	require.NoError(t, err)
	assert.Equal(t, day(0), res.RecordedOn)
	assert.False(t, res.CreatedAt.IsZero())

	cards, err := env.analytics.Latest(ctx, john)
	require.NoError(t, err)
	require.NotEmpty(t, cards)
	assert.Equal(t, "heart_rate", cards[0].Type)
	assert.Equal(t, "150 bpm", cards[0].Value)
	assert.Equal(t, day(0), cards[0].RecordedOn)

	summary, err := env.analytics.Summary(ctx, john, dto.AnalyticsQuery{Metrics: "vitals"})
	require.NoError(t, err)
	require.NotEmpty(t, summary.Series)
	heartRate := summary.Series[0]
	assert.Equal(t, "heart_rate", heartRate.Type)
	assert.Equal(t, "150 bpm", heartRate.Latest)
	require.NotEmpty(t, heartRate.Points)
	assert.Equal(t, "150", heartRate.Points[len(heartRate.Points)-1].Value.String())
}
