package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded for campaign writes.
const (
	AuditCampaignCreated = "campaign_created"
	AuditCampaignUpdated = "campaign_updated"
	AuditCampaignDeleted = "campaign_deleted"
)

type AuditLog struct {
	ID          uuid.UUID  `json:"id"`
	ActorUserID *uuid.UUID `json:"actor_user_id,omitempty"`
	Action      string     `json:"action"`
	EntityType  string     `json:"entity_type"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	Meta        any        `json:"meta,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
