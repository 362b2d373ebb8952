package usecase

import (
	"context"
	"errors"
	"strconv"

	"go-healthcare-portal/internal/converter"
	"go-healthcare-portal/internal/delivery/dto"
	"go-healthcare-portal/internal/domain/entity"
	"go-healthcare-portal/internal/domain/repository"
	"go-healthcare-portal/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidRange         = errors.New("range must be one of 7d, 30d, 90d, 1y")
	ErrInvalidSelection     = errors.New("metrics must be one of all, vitals, weight, glucose")
	ErrInvalidMetricType    = errors.New("invalid metric type")
	ErrMetricValueRequired  = errors.New("value is required")
	ErrBloodPressureMissing = errors.New("blood pressure requires systolic and diastolic")
	ErrInvalidMetricValue   = errors.New("value must be greater than zero")
)

var exportHeader = []string{"date", "type", "value", "unit", "systolic", "diastolic"}

type AnalyticsUsecase interface {
	Latest(ctx context.Context, actor entity.Actor) ([]dto.MetricCardResponse, error)
	Summary(ctx context.Context, actor entity.Actor, query dto.AnalyticsQuery) (*dto.AnalyticsSummaryResponse, error)
	Export(ctx context.Context, actor entity.Actor, query dto.AnalyticsQuery) ([][]string, error)
	Record(ctx context.Context, actor entity.Actor, req *dto.RecordMetricRequest) (*dto.HealthMetricResponse, error)
}

type analyticsUsecase struct {
	log          *logrus.Logger
	metricRepo   repository.HealthMetricRepository
	auditService service.AuditService
	now          Clock
}

func NewAnalyticsUsecase(log *logrus.Logger, metricRepo repository.HealthMetricRepository, auditService service.AuditService) AnalyticsUsecase {
	return &analyticsUsecase{
		log:          log,
		metricRepo:   metricRepo,
		auditService: auditService,
		now:          systemClock,
	}
}

// Latest returns one card per metric type that has readings, in display order.
func (u *analyticsUsecase) Latest(ctx context.Context, actor entity.Actor) ([]dto.MetricCardResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrPatientOnly
	}

	metrics, err := u.metricRepo.Find(ctx, entity.HealthMetricFilter{PatientID: actor.ID})
	if err != nil {
		u.log.Warnf("Failed to find health metrics: %+v", err)
		return nil, err
	}

	byType := groupByType(metrics)
	cards := make([]dto.MetricCardResponse, 0, len(byType))
	for _, t := range entity.AllMetricTypes {
		series := byType[t]
		if len(series) == 0 {
			continue
		}
		latest := series[len(series)-1]
		cards = append(cards, converter.MetricCardToResponse(&latest, entity.ClassifyTrend(seriesValues(series))))
	}
	return cards, nil
}

func (u *analyticsUsecase) Summary(ctx context.Context, actor entity.Actor, query dto.AnalyticsQuery) (*dto.AnalyticsSummaryResponse, error) {
	timeRange, selection, inRange, err := u.selectMetrics(ctx, actor, query)
	if err != nil {
		return nil, err
	}

	res := &dto.AnalyticsSummaryResponse{
		Range:   string(timeRange),
		Metrics: string(selection),
		Series:  make([]dto.MetricSeriesResponse, 0),
	}
	if len(inRange) > 0 {
		res.From = inRange[0].RecordedOn.Format(entity.DateLayout)
		res.To = inRange[len(inRange)-1].RecordedOn.Format(entity.DateLayout)
	}

	byType := groupByType(inRange)
	for _, t := range selection.Types() {
		series := byType[t]
		if len(series) == 0 {
			continue
		}

		values := seriesValues(series)
		points := make([]dto.MetricPointResponse, len(series))
		for i := range series {
			points[i] = converter.MetricPointToResponse(&series[i])
		}

		latest := series[len(series)-1]
		res.Series = append(res.Series, dto.MetricSeriesResponse{
			Type:   string(t),
			Title:  t.Title(),
			Unit:   latest.Unit,
			Latest: latest.DisplayValue(),
			Trend:  string(entity.ClassifyTrend(values)),
			Points: points,
			Bars:   entity.ChartBars(values),
		})
	}

	return res, nil
}

// Export returns the selected readings as CSV rows, header first.
func (u *analyticsUsecase) Export(ctx context.Context, actor entity.Actor, query dto.AnalyticsQuery) ([][]string, error) {
	_, _, inRange, err := u.selectMetrics(ctx, actor, query)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(inRange)+1)
	rows = append(rows, exportHeader)
	for _, m := range inRange {
		rows = append(rows, []string{
			m.RecordedOn.Format(entity.DateLayout),
			string(m.Type),
			m.Value.String(),
			m.Unit,
			optionalInt(m.Systolic),
			optionalInt(m.Diastolic),
		})
	}
	return rows, nil
}

func (u *analyticsUsecase) Record(ctx context.Context, actor entity.Actor, req *dto.RecordMetricRequest) (*dto.HealthMetricResponse, error) {
	if !actor.IsPatient() {
		return nil, ErrPatientOnly
	}

	metricType := entity.MetricType(req.Type)
	if !metricType.IsValid() {
		return nil, ErrInvalidMetricType
	}

	metric := &entity.HealthMetric{
		ID:        uuid.New(),
		PatientID: actor.ID,
		Type:      metricType,
		Unit:      req.Unit,
	}
	if metric.Unit == "" {
		metric.Unit = metricType.DefaultUnit()
	}

	if metricType == entity.MetricBloodPressure {
		if req.Systolic == nil || req.Diastolic == nil {
			return nil, ErrBloodPressureMissing
		}
		metric.Systolic = req.Systolic
		metric.Diastolic = req.Diastolic
		metric.Value = decimal.NewFromInt(int64(*req.Systolic))
	} else {
		if req.Value == nil {
			return nil, ErrMetricValueRequired
		}
		if !req.Value.IsPositive() {
			return nil, ErrInvalidMetricValue
		}
		metric.Value = *req.Value
	}

	metric.RecordedOn = entity.TruncateDay(u.now())
	if req.Date != "" {
		day, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		metric.RecordedOn = day
	}

	if err := u.metricRepo.Create(ctx, metric); err != nil {
		u.log.Warnf("Failed to create health metric: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, actor.ID, entity.AuditActionMetricRecord, "health_metric", metric.ID.String(), map[string]interface{}{
		"type":  metric.Type,
		"value": metric.DisplayValue(),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	res := converter.HealthMetricToResponse(metric)
	return &res, nil
}

// selectMetrics loads the readings of the selection that fall inside the
// window ending at the newest of them.
func (u *analyticsUsecase) selectMetrics(ctx context.Context, actor entity.Actor, query dto.AnalyticsQuery) (entity.TimeRange, entity.MetricSelection, []entity.HealthMetric, error) {
	if !actor.IsPatient() {
		return "", "", nil, ErrPatientOnly
	}

	timeRange := entity.TimeRange(query.Range)
	if timeRange == "" {
		timeRange = entity.Range7Days
	}
	days := timeRange.Days()
	if days == 0 {
		return "", "", nil, ErrInvalidRange
	}

	selection := entity.MetricSelection(query.Metrics)
	if selection == "" {
		selection = entity.SelectionAll
	}
	types := selection.Types()
	if types == nil {
		return "", "", nil, ErrInvalidSelection
	}

	metrics, err := u.metricRepo.Find(ctx, entity.HealthMetricFilter{PatientID: actor.ID, Types: types})
	if err != nil {
		u.log.Warnf("Failed to find health metrics: %+v", err)
		return "", "", nil, err
	}
	if len(metrics) == 0 {
		return timeRange, selection, metrics, nil
	}

	from := metrics[len(metrics)-1].RecordedOn.AddDate(0, 0, -(days - 1))
	inRange := make([]entity.HealthMetric, 0, len(metrics))
	for _, m := range metrics {
		if !m.RecordedOn.Before(from) {
			inRange = append(inRange, m)
		}
	}
	return timeRange, selection, inRange, nil
}

func groupByType(metrics []entity.HealthMetric) map[entity.MetricType][]entity.HealthMetric {
	byType := make(map[entity.MetricType][]entity.HealthMetric)
	for _, m := range metrics {
		byType[m.Type] = append(byType[m.Type], m)
	}
	return byType
}

func seriesValues(series []entity.HealthMetric) []decimal.Decimal {
	values := make([]decimal.Decimal, len(series))
	for i := range series {
		values[i] = series[i].Value
	}
	return values
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
