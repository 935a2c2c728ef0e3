package events

import (
	"context"

	"github.com/google/uuid"
)

// ChannelCampaign carries every campaign write event.
const ChannelCampaign = "events:campaign"

// Event types
const (
	EventCampaignCreated = "campaign_created"
	EventCampaignUpdated = "campaign_updated"
	EventCampaignDeleted = "campaign_deleted"
)

// CampaignRef identifies the campaign a write touched and who owns it.
type CampaignRef struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
}

type Event struct {
	Type    string      `json:"type"`
	Payload CampaignRef `json:"payload"`
}

func NewCampaignEvent(eventType string, campaignID, ownerID uuid.UUID) Event {
	return Event{
		Type:    eventType,
		Payload: CampaignRef{CampaignID: campaignID, OwnerID: ownerID},
	}
}

// Valid reports whether e is a known campaign event with an owner to route to.
func (e Event) Valid() bool {
	switch e.Type {
	case EventCampaignCreated, EventCampaignUpdated, EventCampaignDeleted:
		return e.Payload.OwnerID != uuid.Nil
	}
	return false
}

type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler func(Event)) error
}
