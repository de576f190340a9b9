package models

import "time"

// BreedingStatus follows a record from pairing to birth. A record only
// reaches born after it was completed and the gestation period elapsed.
type BreedingStatus string

const (
	BreedingScheduled BreedingStatus = "scheduled"
	BreedingCompleted BreedingStatus = "completed"
	BreedingBorn      BreedingStatus = "born"
)

// BreedingRecord links two parent animals and the projected offspring traits.
type BreedingRecord struct {
	ID              string             `json:"id"`
	SireID          string             `json:"sire_id"`
	DamID           string             `json:"dam_id"`
	Species         Species            `json:"species"`
	ProjectedTraits map[string]float64 `json:"projected_traits"`
	Compatibility   float64            `json:"compatibility"`
	Status          BreedingStatus     `json:"status"`
	ScheduledAt     time.Time          `json:"scheduled_at"`
	CompletedAt     time.Time          `json:"completed_at,omitempty"`
	DueAt           time.Time          `json:"due_at,omitempty"`
}
