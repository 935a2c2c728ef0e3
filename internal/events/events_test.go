package events

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValid(t *testing.T) {
	owner := uuid.New()

	assert.True(t, NewCampaignEvent(EventCampaignCreated, uuid.New(), owner).Valid())
	assert.True(t, NewCampaignEvent(EventCampaignDeleted, uuid.New(), owner).Valid())
	assert.False(t, NewCampaignEvent(EventCampaignUpdated, uuid.New(), uuid.Nil).Valid())
	assert.False(t, NewCampaignEvent("campaign_archived", uuid.New(), owner).Valid())
}

func TestEventWireFormat(t *testing.T) {
	campaignID, owner := uuid.New(), uuid.New()

	data, err := json.Marshal(NewCampaignEvent(EventCampaignUpdated, campaignID, owner))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"campaign_updated","payload":{"campaign_id":"`+campaignID.String()+`","owner_id":"`+owner.String()+`"}}`, string(data))

	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, campaignID, got.Payload.CampaignID)
	assert.Equal(t, owner, got.Payload.OwnerID)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"campaign_deleted","payload":{"owner_id":"not-a-uuid"}}`), &got))
}
