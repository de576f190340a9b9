package models

import "time"

// Severity grades anomalies and alerts.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Anomaly is the finding of a condition evaluator. Evaluators never persist
// or notify themselves; callers decide what to do with the finding.
type Anomaly struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
	EntityID       string   `json:"entity_id"`
}

// AlertIntent is a request to raise an alert, emitted by generators instead
// of calling the alert sink directly so their output stays pure.
type AlertIntent struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Alert is an anomaly surfaced to the player. Alerts are append-only: they
// are acknowledged or resolved via explicit calls, never deleted.
type Alert struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Severity       Severity  `json:"severity"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Recommendation string    `json:"recommendation,omitempty"`
	Acknowledged   bool      `json:"acknowledged"`
	Resolved       bool      `json:"resolved"`
	CreatedAt      time.Time `json:"created_at"`
}
