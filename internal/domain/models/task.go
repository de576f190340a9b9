package models

import "time"

// TaskStatus tracks an automation task through its lifecycle. Completed,
// dismissed and expired are terminal.
type TaskStatus string

const (
	TaskScheduled TaskStatus = "scheduled"
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
	TaskDismissed TaskStatus = "dismissed"
	TaskExpired   TaskStatus = "expired"
)

// FarmTask is a recommendation the player accepted for automated scheduling.
// DueAt is zero when the source recommendation carried no deadline.
type FarmTask struct {
	ID               string            `json:"id"`
	RecommendationID string            `json:"recommendation_id"`
	Title            string            `json:"title"`
	Actions          []ActionDirective `json:"actions"`
	Reward           Reward            `json:"reward"`
	Status           TaskStatus        `json:"status"`
	DueAt            time.Time         `json:"due_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}
