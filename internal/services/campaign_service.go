package services

import (
	"context"
	"errors"

	"github.com/campaign-tracker/backend/internal/events"
	"github.com/campaign-tracker/backend/internal/models"
	"github.com/campaign-tracker/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCampaignNotFound covers both missing campaigns and campaigns owned by
// someone else.
var ErrCampaignNotFound = errors.New("campaign not found")

const auditEntityCampaign = "campaign"

type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Campaign, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Campaign, error)
	Update(ctx context.Context, c *models.Campaign) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type AuditStore interface {
	Log(ctx context.Context, entry models.AuditLog) error
	GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error)
}

type CampaignService struct {
	campaigns      CampaignStore
	audit          AuditStore
	publisher      events.Publisher
	enforceEndDate bool
	log            *zap.Logger
}

func NewCampaignService(
	campaigns CampaignStore,
	audit AuditStore,
	publisher events.Publisher,
	enforceEndDate bool,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaigns:      campaigns,
		audit:          audit,
		publisher:      publisher,
		enforceEndDate: enforceEndDate,
		log:            log,
	}
}

func (s *CampaignService) List(ctx context.Context, ownerID uuid.UUID) ([]models.Campaign, error) {
	list, err := s.campaigns.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Campaign{}
	}
	return list, nil
}

// Create validates in and stores a new campaign owned by ownerID.
func (s *CampaignService) Create(ctx context.Context, ownerID uuid.UUID, in models.CampaignInput) (*models.Campaign, error) {
	c, err := in.Apply(models.Campaign{OwnerID: ownerID}, models.ApplyOptions{EnforceEndDate: s.enforceEndDate})
	if err != nil {
		return nil, err
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, ownerID, models.AuditCampaignCreated, c.ID, map[string]any{
		"title":  c.Title,
		"status": c.Status,
	})
	s.notify(ctx, events.EventCampaignCreated, c.ID, ownerID)
	return c, nil
}

func (s *CampaignService) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id, ownerID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies in over the stored campaign. With partial set only the
// present fields change (PATCH); otherwise every required field must be
// present (PUT).
func (s *CampaignService) Update(ctx context.Context, id, ownerID uuid.UUID, in models.CampaignInput, partial bool) (*models.Campaign, error) {
	existing, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	c, err := in.Apply(*existing, models.ApplyOptions{Partial: partial, EnforceEndDate: s.enforceEndDate})
	if err != nil {
		return nil, err
	}

	if err := s.campaigns.Update(ctx, c); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	s.record(ctx, ownerID, models.AuditCampaignUpdated, c.ID, changedFields(*existing, *c))
	s.notify(ctx, events.EventCampaignUpdated, c.ID, ownerID)
	return c, nil
}

func (s *CampaignService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.campaigns.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCampaignNotFound
		}
		return err
	}

	s.record(ctx, ownerID, models.AuditCampaignDeleted, id, nil)
	s.notify(ctx, events.EventCampaignDeleted, id, ownerID)
	return nil
}

// History returns the audit trail of a campaign the caller still owns,
// newest first.
func (s *CampaignService) History(ctx context.Context, id, ownerID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return nil, err
	}
	logs, err := s.audit.GetByEntity(ctx, auditEntityCampaign, id, limit, offset)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}

// record writes an audit entry. Failures are logged and never fail the write
// that triggered them.
func (s *CampaignService) record(ctx context.Context, actor uuid.UUID, action string, campaignID uuid.UUID, meta map[string]any) {
	entry := models.AuditLog{
		ActorUserID: &actor,
		Action:      action,
		EntityType:  auditEntityCampaign,
		EntityID:    &campaignID,
	}
	if len(meta) > 0 {
		entry.Meta = meta
	}
	if err := s.audit.Log(ctx, entry); err != nil {
		s.log.Warn("audit log write failed",
			zap.String("action", action),
			zap.String("campaign_id", campaignID.String()),
			zap.Error(err),
		)
	}
}

func (s *CampaignService) notify(ctx context.Context, eventType string, campaignID, ownerID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, events.ChannelCampaign, events.NewCampaignEvent(eventType, campaignID, ownerID))
	if err != nil {
		s.log.Warn("failed to publish campaign event",
			zap.String("type", eventType),
			zap.String("campaign_id", campaignID.String()),
			zap.Error(err),
		)
	}
}

// changedFields lists the client-visible fields that differ between before
// and after, keyed by their JSON names.
func changedFields(before, after models.Campaign) map[string]any {
	changed := make(map[string]any)
	if before.Title != after.Title {
		changed["title"] = after.Title
	}
	if before.Platform != after.Platform {
		changed["platform"] = after.Platform
	}
	if !before.BudgetINR.Equal(after.BudgetINR) {
		changed["budget_inr"] = models.FormatBudget(after.BudgetINR)
	}
	if before.Status != after.Status {
		changed["status"] = after.Status
	}
	if !before.StartDate.Equal(after.StartDate) {
		changed["start_date"] = after.StartDate.Format(models.DateLayout)
	}
	switch {
	case before.EndDate == nil && after.EndDate == nil:
	case before.EndDate == nil || after.EndDate == nil || !before.EndDate.Equal(*after.EndDate):
		if after.EndDate == nil {
			changed["end_date"] = nil
		} else {
			changed["end_date"] = after.EndDate.Format(models.DateLayout)
		}
	}
	return changed
}
