package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Period is a calendar bucket size for reports.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod accepts daily, weekly or monthly.
func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q", raw)
	}
}

// TypeTotal is the summed cost of one energy type.
type TypeTotal struct {
	EnergyType EnergyType      `json:"energy_type"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Count      int             `json:"count"`
}

// Report groups a user's costs inside one calendar bucket [BucketStart, BucketEnd).
type Report struct {
	UserID      string          `json:"user_id"`
	Period      Period          `json:"period"`
	BucketStart time.Time       `json:"bucket_start"`
	BucketEnd   time.Time       `json:"bucket_end"`
	Totals      []TypeTotal     `json:"totals"`
	NetTotal    decimal.Decimal `json:"net_total"`
	Currency    string          `json:"currency"`
}

// Summary groups every matching record regardless of date.
type Summary struct {
	UserID   string          `json:"user_id,omitempty"`
	Totals   []TypeTotal     `json:"totals"`
	NetTotal decimal.Decimal `json:"net_total"`
	Currency string          `json:"currency"`
}
