package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"timecraft/internal/cache"
	"timecraft/internal/repository"
)

const (
	dashboardCacheKey = "analytics:dashboard"
	dashboardCacheTTL = 60 * time.Second
	trendMonths       = 6
	topClients        = 10
)

// DashboardOverview summarizes all-time and 30-day activity.
type DashboardOverview struct {
	TotalRewrites    int64           `json:"total_rewrites"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	TotalClients     int64           `json:"total_clients"`
	AvgHoursPerEntry decimal.Decimal `json:"avg_hours_per_entry"`
	RewritesChange   float64         `json:"rewrites_change_30d"`
	HoursChange      float64         `json:"hours_change_30d"`
}

// PeriodActivity is rewrite volume within a 30-day window.
type PeriodActivity struct {
	Rewrites int64           `json:"rewrites"`
	Hours    decimal.Decimal `json:"hours"`
}

// MonthlyPoint is one month of the dashboard trend line.
type MonthlyPoint struct {
	Month    string          `json:"month"`
	Rewrites int64           `json:"rewrites"`
	Hours    decimal.Decimal `json:"hours"`
}

// Dashboard is the full analytics dashboard payload.
type Dashboard struct {
	Overview        DashboardOverview              `json:"overview"`
	ClientBreakdown []repository.ClientActivityRow `json:"client_breakdown"`
	MonthlyTrend    []MonthlyPoint                 `json:"monthly_trend"`
	RecentActivity  struct {
		Last30Days     PeriodActivity `json:"last_30_days"`
		Previous30Days PeriodActivity `json:"previous_30_days"`
	} `json:"recent_activity"`
}

// AnalyticsService builds billing analytics for the dashboard.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type analyticsService struct {
	stats   repository.StatsRepository
	clients repository.ClientRepository
	cache   *cache.Client
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(stats repository.StatsRepository, clients repository.ClientRepository, cacheClient *cache.Client) AnalyticsService {
	return &analyticsService{stats: stats, clients: clients, cache: cacheClient}
}

// Dashboard aggregates totals, 30/60-day deltas, a top-client breakdown and
// a six-month trend. The result is cached briefly since the queries scan
// the whole entry table.
func (s *analyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && data != nil {
			var cached Dashboard
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	dashboard, err := s.buildDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(dashboard); err == nil {
			_ = s.cache.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL)
		}
	}
	return dashboard, nil
}

func (s *analyticsService) buildDashboard(ctx context.Context) (*Dashboard, error) {
	now := time.Now().UTC()
	thirtyDaysAgo := now.AddDate(0, 0, -30)
	sixtyDaysAgo := now.AddDate(0, 0, -60)

	totalRewrites, err := s.stats.CountRewrites(ctx)
	if err != nil {
		return nil, err
	}
	totalHours, err := s.stats.SumHours(ctx)
	if err != nil {
		return nil, err
	}
	totalClients, err := s.clients.Count(ctx)
	if err != nil {
		return nil, err
	}

	recentRewrites, err := s.stats.CountRewritesBetween(ctx, thirtyDaysAgo, now)
	if err != nil {
		return nil, err
	}
	prevRewrites, err := s.stats.CountRewritesBetween(ctx, sixtyDaysAgo, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}
	recentHours, err := s.stats.SumHoursBetween(ctx, thirtyDaysAgo, now)
	if err != nil {
		return nil, err
	}
	prevHours, err := s.stats.SumHoursBetween(ctx, sixtyDaysAgo, thirtyDaysAgo)
	if err != nil {
		return nil, err
	}

	activity, err := s.stats.ClientActivity(ctx)
	if err != nil {
		return nil, err
	}
	if len(activity) > topClients {
		activity = activity[:topClients]
	}

	trend, err := s.monthlyTrend(ctx, now)
	if err != nil {
		return nil, err
	}

	avgHours := decimal.Zero
	if totalRewrites > 0 {
		avgHours = totalHours.Div(decimal.NewFromInt(totalRewrites)).Round(2)
	}

	dashboard := &Dashboard{
		Overview: DashboardOverview{
			TotalRewrites:    totalRewrites,
			TotalHours:       totalHours,
			TotalClients:     totalClients,
			AvgHoursPerEntry: avgHours,
			RewritesChange:   percentChange(prevRewrites, recentRewrites),
			HoursChange:      percentChangeDecimal(prevHours, recentHours),
		},
		ClientBreakdown: activity,
		MonthlyTrend:    trend,
	}
	dashboard.RecentActivity.Last30Days = PeriodActivity{Rewrites: recentRewrites, Hours: recentHours}
	dashboard.RecentActivity.Previous30Days = PeriodActivity{Rewrites: prevRewrites, Hours: prevHours}
	return dashboard, nil
}

func (s *analyticsService) monthlyTrend(ctx context.Context, now time.Time) ([]MonthlyPoint, error) {
	points := make([]MonthlyPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		rewrites, err := s.stats.CountRewritesBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}
		hours, err := s.stats.SumHoursBetween(ctx, start, end)
		if err != nil {
			return nil, err
		}

		points = append(points, MonthlyPoint{
			Month:    start.Format("Jan 2006"),
			Rewrites: rewrites,
			Hours:    hours,
		})
	}
	return points, nil
}

func percentChange(prev, current int64) float64 {
	if prev == 0 {
		return 0
	}
	return float64(current-prev) / float64(prev) * 100
}

func percentChangeDecimal(prev, current decimal.Decimal) float64 {
	if prev.IsZero() {
		return 0
	}
	change, _ := current.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Float64()
	return change
}
