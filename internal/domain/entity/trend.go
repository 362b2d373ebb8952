package entity

import "github.com/shopspring/decimal"

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

const (
	trendWindow   = 3
	minBarPercent = 10
)

var (
	three   = decimal.NewFromInt(trendWindow)
	hundred = decimal.NewFromInt(100)
)

// ClassifyTrend compares the mean of the last three values with the mean of
// the three before them. Ties count as down. Fewer than six values is flat.
func ClassifyTrend(values []decimal.Decimal) Trend {
	n := len(values)
	if n < 2*trendWindow {
		return TrendFlat
	}
	recent := mean(values[n-trendWindow:])
	previous := mean(values[n-2*trendWindow : n-trendWindow])
	if recent.GreaterThan(previous) {
		return TrendUp
	}
	return TrendDown
}

func mean(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(three)
}

// ChartBars scales each value to a bar height in percent between the series
// min and max, never lower than 10 so flat series stay visible.
func ChartBars(values []decimal.Decimal) []float64 {
	if len(values) == 0 {
		return []float64{}
	}
	lo, hi := decimal.Min(values[0], values[1:]...), decimal.Max(values[0], values[1:]...)
	span := hi.Sub(lo)
	if span.IsZero() {
		span = decimal.NewFromInt(1)
	}

	bars := make([]float64, len(values))
	for i, v := range values {
		height := v.Sub(lo).Div(span).Mul(hundred).Round(2)
		if height.LessThan(decimal.NewFromInt(minBarPercent)) {
			height = decimal.NewFromInt(minBarPercent)
		}
		bars[i] = height.InexactFloat64()
	}
	return bars
}
