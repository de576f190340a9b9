package models

import "time"

// Priority ranks how urgently a recommendation should surface to the player.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// PriorityWeight is the dominant term of the ranking formula. The tiers are
// spaced by two orders of magnitude so urgency and reward only break ties
// within a tier.
var PriorityWeight = map[Priority]float64{
	PriorityCritical: 1000,
	PriorityHigh:     100,
	PriorityMedium:   10,
	PriorityLow:      1,
}

// Category groups recommendations by the generator family that produced them.
type Category string

const (
	CategoryCriticalIssue     Category = "critical_issue"
	CategoryOptimization      Category = "optimization"
	CategoryGrowthOpportunity Category = "growth_opportunity"
	CategoryPreventive        Category = "preventive"
)

// RecommendationStatus tracks the lifecycle of a recommendation once the
// caller has seen it. Completed, dismissed and expired are terminal.
type RecommendationStatus string

const (
	RecommendationPending   RecommendationStatus = "pending"
	RecommendationAccepted  RecommendationStatus = "accepted"
	RecommendationDeferred  RecommendationStatus = "deferred"
	RecommendationCompleted RecommendationStatus = "completed"
	RecommendationDismissed RecommendationStatus = "dismissed"
	RecommendationExpired   RecommendationStatus = "expired"
)

// ActionDirective is one concrete step the player (or the automation
// executor) should take. Every recommendation carries at least one.
type ActionDirective struct {
	Action   string  `json:"action"`
	TargetID string  `json:"target_id"`
	Amount   float64 `json:"amount,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// Reward is the in-game payout for completing a recommendation or task.
type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// Recommendation is the structured advice record produced by a generator.
// DeadlineHours of zero means no deadline.
type Recommendation struct {
	ID            string               `json:"id"`
	Category      Category             `json:"category"`
	Type          string               `json:"type"`
	Priority      Priority             `json:"priority"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Reasoning     string               `json:"reasoning"`
	Actions       []ActionDirective    `json:"actions"`
	Locations     []string             `json:"locations,omitempty"`
	Reward        Reward               `json:"reward"`
	DeadlineHours float64              `json:"deadline_hours,omitempty"`
	Impact        string               `json:"impact,omitempty"`
	Status        RecommendationStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}
