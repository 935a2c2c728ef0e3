package services

import (
	"context"

	"github.com/campaign-tracker/backend/internal/events"
	"github.com/campaign-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockCampaignStore struct{ mock.Mock }

func (m *mockCampaignStore) Create(ctx context.Context, c *models.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignStore) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Campaign, error) {
	args := m.Called(ctx, id, ownerID)
	c, _ := args.Get(0).(*models.Campaign)
	return c, args.Error(1)
}

func (m *mockCampaignStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Campaign, error) {
	args := m.Called(ctx, ownerID)
	list, _ := args.Get(0).([]models.Campaign)
	return list, args.Error(1)
}

func (m *mockCampaignStore) Update(ctx context.Context, c *models.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type mockAuditStore struct{ mock.Mock }

func (m *mockAuditStore) Log(ctx context.Context, entry models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockAuditStore) GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID, limit, offset)
	logs, _ := args.Get(0).([]models.AuditLog)
	return logs, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, channel string, event events.Event) error {
	return m.Called(ctx, channel, event).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockDashboardStore struct{ mock.Mock }

func (m *mockDashboardStore) StatusCounts(ctx context.Context, ownerID uuid.UUID) ([]models.StatusCount, error) {
	args := m.Called(ctx, ownerID)
	v, _ := args.Get(0).([]models.StatusCount)
	return v, args.Error(1)
}

func (m *mockDashboardStore) PlatformCounts(ctx context.Context, ownerID uuid.UUID) ([]models.PlatformCount, error) {
	args := m.Called(ctx, ownerID)
	v, _ := args.Get(0).([]models.PlatformCount)
	return v, args.Error(1)
}

func (m *mockDashboardStore) BudgetTotals(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *mockDashboardStore) Trends(ctx context.Context, ownerID uuid.UUID, timeZone string) ([]models.TrendPoint, error) {
	args := m.Called(ctx, ownerID, timeZone)
	v, _ := args.Get(0).([]models.TrendPoint)
	return v, args.Error(1)
}
