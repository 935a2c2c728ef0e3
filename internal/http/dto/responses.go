package dto

import (
	"encoding/json"
	"time"

	"github.com/campaign-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type UpstreamErrorResponse struct {
	Error string `json:"error"`
	Raw   any    `json:"raw"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AccessResponse struct {
	Access string `json:"access"`
}

type CampaignResponse struct {
	ID        uuid.UUID `json:"id"`
	Owner     uuid.UUID `json:"owner"`
	Title     string    `json:"title"`
	Platform  string    `json:"platform"`
	BudgetINR string    `json:"budget_inr"`
	Status    string    `json:"status"`
	StartDate string    `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCampaignResponse(c *models.Campaign) CampaignResponse {
	resp := CampaignResponse{
		ID:        c.ID,
		Owner:     c.OwnerID,
		Title:     c.Title,
		Platform:  c.Platform,
		BudgetINR: models.FormatBudget(c.BudgetINR),
		Status:    c.Status,
		StartDate: c.StartDate.Format(models.DateLayout),
		CreatedAt: c.CreatedAt,
	}
	if c.EndDate != nil {
		end := c.EndDate.Format(models.DateLayout)
		resp.EndDate = &end
	}
	return resp
}

func NewCampaignListResponse(list []models.Campaign) []CampaignResponse {
	out := make([]CampaignResponse, 0, len(list))
	for i := range list {
		out = append(out, NewCampaignResponse(&list[i]))
	}
	return out
}

type StatusCountJSON struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PlatformCountJSON struct {
	Platform string `json:"platform"`
	Count    int64  `json:"count"`
}

type TrendPointJSON struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// DashboardResponse renders budgets as JSON numbers.
type DashboardResponse struct {
	StatusCounts   []StatusCountJSON   `json:"status_counts"`
	PlatformCounts []PlatformCountJSON `json:"platform_counts"`
	TotalBudget    json.Number         `json:"total_budget"`
	RunningBudget  json.Number         `json:"running_budget"`
	Trends         []TrendPointJSON    `json:"trends"`
}

func NewDashboardResponse(d *models.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		StatusCounts:   make([]StatusCountJSON, 0, len(d.StatusCounts)),
		PlatformCounts: make([]PlatformCountJSON, 0, len(d.PlatformCounts)),
		TotalBudget:    decimalNumber(d.TotalBudget),
		RunningBudget:  decimalNumber(d.RunningBudget),
		Trends:         make([]TrendPointJSON, 0, len(d.Trends)),
	}
	for _, s := range d.StatusCounts {
		resp.StatusCounts = append(resp.StatusCounts, StatusCountJSON{Status: s.Status, Count: s.Count})
	}
	for _, p := range d.PlatformCounts {
		resp.PlatformCounts = append(resp.PlatformCounts, PlatformCountJSON{Platform: p.Platform, Count: p.Count})
	}
	for _, t := range d.Trends {
		resp.Trends = append(resp.Trends, TrendPointJSON{Day: t.Day.Format(models.DateLayout), Count: t.Count})
	}
	return resp
}

func decimalNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type ConvertResponse struct {
	AmountINR float64 `json:"amount_inr"`
	USDRate   float64 `json:"usd_rate"`
	AmountUSD float64 `json:"amount_usd"`
}
