package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StatusCount struct {
	Status string
	Count  int64
}

type PlatformCount struct {
	Platform string
	Count    int64
}

// TrendPoint counts campaigns created on one calendar day.
type TrendPoint struct {
	Day   time.Time
	Count int64
}

// Dashboard is the per-owner aggregate view over campaigns.
type Dashboard struct {
	StatusCounts   []StatusCount
	PlatformCounts []PlatformCount
	TotalBudget    decimal.Decimal
	RunningBudget  decimal.Decimal
	Trends         []TrendPoint
}
