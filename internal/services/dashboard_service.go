package services

import (
	"context"
	"fmt"

	"github.com/campaign-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DashboardStore interface {
	StatusCounts(ctx context.Context, ownerID uuid.UUID) ([]models.StatusCount, error)
	PlatformCounts(ctx context.Context, ownerID uuid.UUID) ([]models.PlatformCount, error)
	BudgetTotals(ctx context.Context, ownerID uuid.UUID) (total, running decimal.Decimal, err error)
	Trends(ctx context.Context, ownerID uuid.UUID, timeZone string) ([]models.TrendPoint, error)
}

// DashboardService computes the per-owner aggregates on every call.
type DashboardService struct {
	store    DashboardStore
	timeZone string
}

func NewDashboardService(store DashboardStore, timeZone string) *DashboardService {
	return &DashboardService{store: store, timeZone: timeZone}
}

func (s *DashboardService) Get(ctx context.Context, ownerID uuid.UUID) (*models.Dashboard, error) {
	statuses, err := s.store.StatusCounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	platforms, err := s.store.PlatformCounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("platform counts: %w", err)
	}
	total, running, err := s.store.BudgetTotals(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("budget totals: %w", err)
	}
	trends, err := s.store.Trends(ctx, ownerID, s.timeZone)
	if err != nil {
		return nil, fmt.Errorf("trends: %w", err)
	}

	d := &models.Dashboard{
		StatusCounts:   statuses,
		PlatformCounts: platforms,
		TotalBudget:    total,
		RunningBudget:  running,
		Trends:         trends,
	}
	if d.StatusCounts == nil {
		d.StatusCounts = []models.StatusCount{}
	}
	if d.PlatformCounts == nil {
		d.PlatformCounts = []models.PlatformCount{}
	}
	if d.Trends == nil {
		d.Trends = []models.TrendPoint{}
	}
	return d, nil
}
