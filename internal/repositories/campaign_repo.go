package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campaign-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// CampaignRepo stores campaigns. Every statement is scoped by owner_id, so a
// row that belongs to someone else is indistinguishable from a missing one.
type CampaignRepo struct {
	db DBTX
}

func NewCampaignRepo(db DBTX) *CampaignRepo {
	return &CampaignRepo{db: db}
}

const campaignColumns = `id, owner_id, title, platform, budget_inr::text, status, start_date, end_date, created_at`

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO campaigns (owner_id, title, platform, budget_inr, status, start_date, end_date)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)
		RETURNING id, created_at
	`, c.OwnerID, c.Title, c.Platform, c.BudgetINR.String(), c.Status,
		dateParam(&c.StartDate), dateParam(c.EndDate),
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Campaign, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByOwner returns every campaign of ownerID, newest first.
func (r *CampaignRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Campaign, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := make([]models.Campaign, 0)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

// Update writes the client-writable columns of c. owner_id and created_at are
// never part of the SET list.
func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	row := r.db.QueryRow(ctx, `
		UPDATE campaigns SET title = $1, platform = $2, budget_inr = $3::numeric,
		       status = $4, start_date = $5, end_date = $6
		WHERE id = $7 AND owner_id = $8
		RETURNING created_at
	`, c.Title, c.Platform, c.BudgetINR.String(), c.Status,
		dateParam(&c.StartDate), dateParam(c.EndDate), c.ID, c.OwnerID)

	if err := row.Scan(&c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *CampaignRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var (
		c          models.Campaign
		budget     string
		start, end pgtype.Date
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Title, &c.Platform, &budget, &c.Status,
		&start, &end, &c.CreatedAt); err != nil {
		return nil, err
	}

	d, err := decimal.NewFromString(budget)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: bad budget_inr %q: %w", c.ID, budget, err)
	}
	c.BudgetINR = d

	c.StartDate = dateValue(start)
	if end.Valid {
		e := dateValue(end)
		c.EndDate = &e
	}
	return &c, nil
}

func dateParam(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), Valid: true}
}

func dateValue(d pgtype.Date) time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}
