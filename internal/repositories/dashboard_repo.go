package repositories

import (
	"context"
	"fmt"

	"github.com/campaign-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// DashboardRepo runs the read-only aggregates behind GET /dashboard. Each
// query filters on owner_id; groups with no rows are simply absent.
type DashboardRepo struct {
	db DBTX
}

func NewDashboardRepo(db DBTX) *DashboardRepo {
	return &DashboardRepo{db: db}
}

func (r *DashboardRepo) StatusCounts(ctx context.Context, ownerID uuid.UUID) ([]models.StatusCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(id)
		FROM campaigns WHERE owner_id = $1
		GROUP BY status
		ORDER BY status ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StatusCount, error) {
		var sc models.StatusCount
		err := row.Scan(&sc.Status, &sc.Count)
		return sc, err
	})
}

func (r *DashboardRepo) PlatformCounts(ctx context.Context, ownerID uuid.UUID) ([]models.PlatformCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT platform, COUNT(id)
		FROM campaigns WHERE owner_id = $1
		GROUP BY platform
		ORDER BY platform ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PlatformCount, error) {
		var pc models.PlatformCount
		err := row.Scan(&pc.Platform, &pc.Count)
		return pc, err
	})
}

// BudgetTotals returns the budget sum over all campaigns and over running
// ones. Both are zero when the owner has no matching rows.
func (r *DashboardRepo) BudgetTotals(ctx context.Context, ownerID uuid.UUID) (total, running decimal.Decimal, err error) {
	var totalStr, runningStr string
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(budget_inr), 0)::text,
		       COALESCE(SUM(budget_inr) FILTER (WHERE status = $2), 0)::text
		FROM campaigns WHERE owner_id = $1
	`, ownerID, models.CampaignStatusRunning).Scan(&totalStr, &runningStr)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if total, err = decimal.NewFromString(totalStr); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parse total budget %q: %w", totalStr, err)
	}
	if running, err = decimal.NewFromString(runningStr); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("parse running budget %q: %w", runningStr, err)
	}
	return total, running, nil
}

// Trends counts campaigns per creation day. Days are cut in timeZone, an IANA
// name such as "Asia/Kolkata".
func (r *DashboardRepo) Trends(ctx context.Context, ownerID uuid.UUID, timeZone string) ([]models.TrendPoint, error) {
	rows, err := r.db.Query(ctx, `
		SELECT (created_at AT TIME ZONE $2)::date AS day, COUNT(id)
		FROM campaigns WHERE owner_id = $1
		GROUP BY day
		ORDER BY day ASC
	`, ownerID, timeZone)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TrendPoint, error) {
		var (
			day pgtype.Date
			tp  models.TrendPoint
		)
		if err := row.Scan(&day, &tp.Count); err != nil {
			return tp, err
		}
		tp.Day = dateValue(day)
		return tp, nil
	})
}
