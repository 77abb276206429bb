package services

import (
	"context"
	"errors"
	"time"

	"boutique-backend/internal/models"
	"boutique-backend/internal/repositories"
	"boutique-backend/internal/timeutil"
)

// Top-product rankings: top 3, and the distinct-client ranking only
// counts products at least 2 different clients bought.
const (
	topProductLimit      = 3
	topProductMinClients = 2
	activityFeedLimit    = 10
)

type AnalyticsService struct {
	Repo *repositories.AnalyticsRepository
}

func NewAnalyticsService(repo *repositories.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: repo}
}

// WeeklyMetrics covers the current week from Monday.
func (s *AnalyticsService) WeeklyMetrics(ctx context.Context, systemID int) (*models.SalesMetrics, error) {
	now := timeutil.Now()
	start := timeutil.StartOfWeek(now)
	m, err := s.Repo.SalesMetrics(ctx, systemID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	m.Period = start.Format(timeutil.DateLayout) + " week"
	return m, nil
}

// MonthlyMetrics covers the current calendar month.
func (s *AnalyticsService) MonthlyMetrics(ctx context.Context, systemID int) (*models.SalesMetrics, error) {
	now := timeutil.Now()
	start := timeutil.StartOfMonth(now)
	m, err := s.Repo.SalesMetrics(ctx, systemID, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	m.Period = start.Format("2006-01")
	return m, nil
}

// MonthMetrics covers one named month.
func (s *AnalyticsService) MonthMetrics(ctx context.Context, systemID, year int, month int) (*models.SalesMetrics, error) {
	if month < 1 || month > 12 {
		return nil, errors.New("month must be between 1 and 12")
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timeutil.Loc)
	m, err := s.Repo.SalesMetrics(ctx, systemID, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	m.Period = start.Format("2006-01")
	return m, nil
}

// YearlyMetrics covers one calendar year.
func (s *AnalyticsService) YearlyMetrics(ctx context.Context, systemID, year int) (*models.SalesMetrics, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, timeutil.Loc)
	m, err := s.Repo.SalesMetrics(ctx, systemID, start, start.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	m.Period = start.Format("2006")
	return m, nil
}

// MonthlySeries returns twelve months of metrics for charting a year.
func (s *AnalyticsService) MonthlySeries(ctx context.Context, systemID, year int) ([]*models.SalesMetrics, error) {
	return s.Repo.MonthlyBreakdown(ctx, systemID, year, timeutil.Loc)
}

// TopProducts ranks by distinct buyers by default, by units sold when
// bySales is set.
func (s *AnalyticsService) TopProducts(ctx context.Context, systemID int, bySales bool) ([]*models.TopProduct, error) {
	if bySales {
		return s.Repo.TopProductsBySales(ctx, systemID, topProductLimit)
	}
	return s.Repo.TopProductsByClients(ctx, systemID, topProductMinClients, topProductLimit)
}

func (s *AnalyticsService) RecentActivities(ctx context.Context, systemID int) ([]*models.Activity, error) {
	return s.Repo.RecentActivities(ctx, systemID, activityFeedLimit)
}

func (s *AnalyticsService) DashboardSummary(ctx context.Context, systemID int) (*models.DashboardSummary, error) {
	return s.Repo.DashboardSummary(ctx, systemID, timeutil.StartOfMonth(timeutil.Now()))
}
