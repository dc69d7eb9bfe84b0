package domain

import (
	id "laurel/pkg/domain"
)

// ActionConfig describes one whitelisted reputation action. The catalog is
// seeded at deployment and admin-mutable afterwards.
type ActionConfig struct {
	Type                 id.ActionType
	BaseMultiplier       uint64
	MaxDailyApplications uint64
	RequiresVerification bool
	Enabled              bool
}

// Admin-tunable bounds for action configuration.
const (
	MinActionMultiplier = 1
	MaxActionMultiplier = 100
	MinDailyCap         = 1
	MaxDailyCap         = 50
)
