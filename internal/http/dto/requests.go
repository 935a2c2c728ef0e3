package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/campaign-tracker/backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// CampaignRequest is the body of POST, PUT and PATCH /campaigns. Read-only
// fields (id, owner, created_at) are not decoded at all. Each field records
// whether it was absent, null or set.
type CampaignRequest struct {
	Title     NullableString  `json:"title"`
	Platform  NullableString  `json:"platform"`
	BudgetINR NullableNumeric `json:"budget_inr"`
	Status    NullableString  `json:"status"`
	StartDate NullableString  `json:"start_date"`
	EndDate   NullableString  `json:"end_date"`
}

func (r CampaignRequest) ToInput() models.CampaignInput {
	return models.CampaignInput{
		Title:     r.Title.Optional(),
		Platform:  r.Platform.Optional(),
		BudgetINR: NullableString(r.BudgetINR).Optional(),
		Status:    r.Status.Optional(),
		StartDate: r.StartDate.Optional(),
		EndDate:   r.EndDate.Optional(),
	}
}

// NullableString tells an absent field from an explicit null.
type NullableString struct {
	Value string
	Set   bool
	Null  bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if isNull(data) {
		n.Null = true
		n.Value = ""
		return nil
	}
	n.Null = false
	return json.Unmarshal(data, &n.Value)
}

func (n NullableString) Optional() models.Optional {
	return models.Optional{Value: n.Value, Set: n.Set, Null: n.Null}
}

// NullableNumeric accepts a JSON string, number or null and keeps the text,
// so decimal amounts never pass through float64.
type NullableNumeric NullableString

func (n *NullableNumeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' && !isNull(data) {
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("expected a number or numeric string: %w", err)
		}
		*n = NullableNumeric{Value: num.String(), Set: true}
		return nil
	}
	return (*NullableString)(n).UnmarshalJSON(data)
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
