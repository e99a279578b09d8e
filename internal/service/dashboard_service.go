package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/infra"
	"github.com/Bojom/Warehouse/internal/repository"
	"github.com/Bojom/Warehouse/pkg/chart"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/montanaflynn/stats"
)

const dayLayout = "2006-01-02"

// DashboardService builds the aggregate series behind the dashboard charts.
type DashboardService interface {
	Trend(ctx context.Context, days int) (*dto.TrendResponse, error)
	Composition(ctx context.Context, by string) (*dto.CompositionResponse, error)
	Anomalies(ctx context.Context, days int) (*dto.AnomalyResponse, error)
}

type dashboardService struct {
	parts     repository.PartRepository
	movements repository.StockMovementRepository
	cache     *infra.Cache
	now       func() time.Time
}

func NewDashboardService(parts repository.PartRepository, movements repository.StockMovementRepository, cache *infra.Cache) DashboardService {
	return &dashboardService{parts: parts, movements: movements, cache: cache, now: time.Now}
}

func checkDays(days int) error {
	if days < 1 || days > 365 {
		return apierror.Invalid("days must be between 1 and 365")
	}
	return nil
}

// windowStart returns midnight UTC of the first day in a window of n days
// ending today.
func (s *dashboardService) windowStart(days int) time.Time {
	today := s.now().UTC().Truncate(24 * time.Hour)
	return today.AddDate(0, 0, -(days - 1))
}

// Trend returns one entry per day of the window, zero-filled where nothing moved.
func (s *dashboardService) Trend(ctx context.Context, days int) (*dto.TrendResponse, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}
	start := s.windowStart(days)

	var out dto.TrendResponse
	err := s.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		rows, err := s.movements.DailyFlow(ctx, start)
		if err != nil {
			return nil, err
		}
		byDay := make(map[string]repository.DailyFlow, len(rows))
		for _, r := range rows {
			byDay[r.Day.UTC().Format(dayLayout)] = r
		}

		data := make([]dto.DailyStockFlow, 0, days)
		dates := make([]string, 0, days)
		in := make([]int64, 0, days)
		outs := make([]int64, 0, days)
		for i := 0; i < days; i++ {
			day := start.AddDate(0, 0, i).Format(dayLayout)
			r := byDay[day]
			data = append(data, dto.DailyStockFlow{Day: day, In: r.In, Out: r.Out})
			dates = append(dates, day)
			in = append(in, r.In)
			outs = append(outs, r.Out)
		}
		return dto.TrendResponse{Data: data, Option: chart.TrendOption(dates, in, outs)}, nil
	}, "dashboard", "trend", start.Format(dayLayout), strconv.Itoa(days))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *dashboardService) Composition(ctx context.Context, by string) (*dto.CompositionResponse, error) {
	if by == "" {
		by = "part_type"
	}

	var out dto.CompositionResponse
	err := s.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		groups, err := s.parts.StockByGroup(ctx, by)
		if err != nil {
			return nil, err
		}
		items := make([]chart.PieItem, 0, len(groups))
		for _, g := range groups {
			items = append(items, chart.PieItem{Name: g.Name, Value: float64(g.Total)})
		}
		return dto.CompositionResponse{By: by, Data: items, Option: chart.CompositionOption(items)}, nil
	}, "dashboard", "composition", by)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Anomalies scores every supplier by the absolute z-score of its outbound
// volume over the window. Fewer than two suppliers or zero spread scores 0.
func (s *dashboardService) Anomalies(ctx context.Context, days int) (*dto.AnomalyResponse, error) {
	if err := checkDays(days); err != nil {
		return nil, err
	}
	start := s.windowStart(days)

	var out dto.AnomalyResponse
	err := s.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		rows, err := s.movements.OutboundBySupplier(ctx, start)
		if err != nil {
			return nil, err
		}
		scores, err := zScores(rows)
		if err != nil {
			return nil, err
		}

		data := make([]dto.SupplierAnomaly, 0, len(rows))
		names := make([]string, 0, len(rows))
		for i, r := range rows {
			data = append(data, dto.SupplierAnomaly{
				SupplierID:   r.SupplierID,
				SupplierName: r.SupplierName,
				Outbound:     r.Outbound,
				Score:        scores[i],
			})
			names = append(names, r.SupplierName)
		}
		return dto.AnomalyResponse{Data: data, Option: chart.AnomalyOption(names, scores)}, nil
	}, "dashboard", "anomalies", start.Format(dayLayout), strconv.Itoa(days))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func zScores(rows []repository.SupplierOutbound) ([]float64, error) {
	scores := make([]float64, len(rows))
	if len(rows) < 2 {
		return scores, nil
	}
	values := make(stats.Float64Data, len(rows))
	for i, r := range rows {
		values[i] = float64(r.Outbound)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil, err
	}
	sd, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return nil, err
	}
	if sd == 0 {
		return scores, nil
	}
	for i, v := range values {
		z, _ := stats.Round(math.Abs(v-mean)/sd, 2)
		scores[i] = z
	}
	return scores, nil
}
