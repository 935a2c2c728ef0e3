package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign platforms
const (
	PlatformInstagram = "instagram"
	PlatformYouTube   = "youtube"
	PlatformFacebook  = "facebook"
	PlatformGoogle    = "google"
)

// Campaign statuses
const (
	CampaignStatusPlanned   = "planned"
	CampaignStatusRunning   = "running"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

const (
	DateLayout = "2006-01-02"

	budgetMaxDecimals = 2
)

type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var PlatformChoices = []Choice{
	{ID: PlatformInstagram, Label: "Instagram"},
	{ID: PlatformYouTube, Label: "YouTube"},
	{ID: PlatformFacebook, Label: "Facebook"},
	{ID: PlatformGoogle, Label: "Google"},
}

var StatusChoices = []Choice{
	{ID: CampaignStatusPlanned, Label: "Planned"},
	{ID: CampaignStatusRunning, Label: "Running"},
	{ID: CampaignStatusPaused, Label: "Paused"},
	{ID: CampaignStatusCompleted, Label: "Completed"},
}

// Campaign is one row of the campaigns table. Dates are calendar dates held
// at UTC midnight.
type Campaign struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Platform  string
	BudgetINR decimal.Decimal
	Status    string
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

// Optional is a client-supplied value that may be absent, an explicit null,
// or set.
type Optional struct {
	Value string
	Set   bool
	Null  bool
}

func Some(v string) Optional { return Optional{Value: v, Set: true} }

func Null() Optional { return Optional{Set: true, Null: true} }

// CampaignInput carries the client-writable campaign fields exactly as they
// arrived. Only end_date may be null.
type CampaignInput struct {
	Title     Optional
	Platform  Optional
	BudgetINR Optional
	Status    Optional
	StartDate Optional
	EndDate   Optional
}

// ApplyOptions control how CampaignInput.Apply treats missing fields.
type ApplyOptions struct {
	// Partial allows required fields to be absent (PATCH).
	Partial bool
	// EnforceEndDate rejects end_date earlier than start_date.
	EnforceEndDate bool
}

// campaignFields is the writable state of a campaign in wire form. Every
// write validates the complete set after the request is merged in.
type campaignFields struct {
	Title     string `json:"title" validate:"required,max=255"`
	Platform  string `json:"platform" validate:"required,oneof=instagram youtube facebook google"`
	BudgetINR string `json:"budget_inr" validate:"required,decimal,nonnegative,max_digits=12,max_decimal_places=2,max_whole_digits=10"`
	Status    string `json:"status" validate:"required,oneof=planned running paused completed"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func fieldsOf(c Campaign) campaignFields {
	f := campaignFields{
		Title:     c.Title,
		Platform:  c.Platform,
		BudgetINR: FormatBudget(c.BudgetINR),
		Status:    c.Status,
		StartDate: c.StartDate.Format(DateLayout),
	}
	if c.EndDate != nil {
		f.EndDate = c.EndDate.Format(DateLayout)
	}
	return f
}

// Apply validates in and returns a copy of base with the present fields
// replaced. Identity fields (ID, OwnerID, CreatedAt) are never touched.
// All field problems are collected into one *ValidationError.
func (in CampaignInput) Apply(base Campaign, opts ApplyOptions) (*Campaign, error) {
	// An absent end_date keeps its stored value on PUT too.
	f := campaignFields{EndDate: fieldsOf(base).EndDate}
	if opts.Partial {
		f = fieldsOf(base)
	}

	verr := &ValidationError{}
	merge := func(field string, v Optional, dst *string, trim bool) {
		if !v.Set {
			return
		}
		if v.Null {
			verr.Add(field, "This field may not be null.")
			return
		}
		*dst = v.Value
		if trim {
			*dst = strings.TrimSpace(v.Value)
		}
		if *dst == "" {
			verr.Add(field, "This field may not be blank.")
		}
	}
	merge("title", in.Title, &f.Title, true)
	merge("platform", in.Platform, &f.Platform, false)
	merge("budget_inr", in.BudgetINR, &f.BudgetINR, true)
	merge("status", in.Status, &f.Status, false)
	merge("start_date", in.StartDate, &f.StartDate, true)

	switch {
	case in.EndDate.Null:
		f.EndDate = ""
	case in.EndDate.Set:
		f.EndDate = strings.TrimSpace(in.EndDate.Value)
		if f.EndDate == "" {
			verr.Add("end_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
	}

	if err := Validate(f); err != nil {
		var fieldErrs *ValidationError
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		for field, msg := range fieldErrs.Fields {
			verr.Add(field, msg)
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	out := base
	out.Title = f.Title
	out.Platform = f.Platform
	out.Status = f.Status
	out.BudgetINR = decimal.RequireFromString(f.BudgetINR)
	out.StartDate, _ = time.Parse(DateLayout, f.StartDate)
	out.EndDate = nil
	if f.EndDate != "" {
		end, _ := time.Parse(DateLayout, f.EndDate)
		out.EndDate = &end
	}

	if opts.EnforceEndDate && out.EndDate != nil && out.EndDate.Before(out.StartDate) {
		return nil, NewValidationError("end_date", "End date must not be before start date.")
	}

	return &out, nil
}

// FormatBudget renders an amount with exactly two decimal places.
func FormatBudget(d decimal.Decimal) string {
	return d.StringFixed(budgetMaxDecimals)
}
