package domain

import "github.com/shopspring/decimal"

// Package is an immutable catalog entry. Users hold a snapshot of it by
// reference once a purchase is approved.
type Package struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	TasksPerDay   int             `json:"tasksPerDay"`
	RewardPerTask decimal.Decimal `json:"rewardPerTask"`
	TotalDays     int             `json:"totalDays"`
	TotalEarnings decimal.Decimal `json:"totalEarnings"`
	Features      []string        `json:"features"`
}
