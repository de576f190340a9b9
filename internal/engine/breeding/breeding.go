// Package breeding implements pair matching and the breeding record
// lifecycle (scheduled -> completed -> born).
package breeding

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/score"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/thresholds"
)

// AncestryDepth is how many generations back a shared ancestor disqualifies a
// pairing.
const AncestryDepth = 3

// ErrNoMatch means no eligible partner exists in the pool.
var ErrNoMatch = errors.New("no eligible breeding partner")

// Match is a scored pairing candidate.
type Match struct {
	Partner         models.Animal      `json:"partner"`
	Compatibility   float64            `json:"compatibility"`
	ProjectedTraits map[string]float64 `json:"projected_traits"`
}

// FindBestMatch returns the highest-compatibility partner for the candidate.
// Pairs sharing an ancestor within AncestryDepth generations are excluded
// entirely, even if they would otherwise score highest. The pedigree map must
// contain every animal referenced by a SireID/DamID chain.
func FindBestMatch(candidate models.Animal, pool []models.Animal, pedigree map[string]models.Animal, rng *rand.Rand) (Match, error) {
	best := Match{Compatibility: -1}

	for _, partner := range pool {
		if partner.ID == candidate.ID {
			continue
		}
		if partner.Species != candidate.Species || partner.Sex == candidate.Sex {
			continue
		}
		if related(candidate, partner, pedigree) {
			continue
		}

		compat := score.Compatibility(candidate, partner, rng)
		if compat > best.Compatibility {
			best = Match{
				Partner:         partner,
				Compatibility:   compat,
				ProjectedTraits: score.ProjectOffspring(candidate, partner, rng),
			}
		}
	}

	if best.Compatibility < 0 {
		return Match{}, ErrNoMatch
	}
	return best, nil
}

// Schedule creates a new breeding record in the scheduled state.
func Schedule(sire, dam models.Animal, now time.Time, rng *rand.Rand) models.BreedingRecord {
	return models.BreedingRecord{
		ID:              uuid.NewString(),
		SireID:          sire.ID,
		DamID:           dam.ID,
		Species:         sire.Species,
		ProjectedTraits: score.ProjectOffspring(sire, dam, rng),
		Compatibility:   score.Compatibility(sire, dam, rng),
		Status:          models.BreedingScheduled,
		ScheduledAt:     now,
	}
}

// Complete marks a scheduled record completed and starts the gestation clock.
func Complete(record models.BreedingRecord, now time.Time) (models.BreedingRecord, error) {
	if record.Status != models.BreedingScheduled {
		return record, errors.New("breeding record is not scheduled")
	}
	gestation, ok := thresholds.GestationDays[record.Species]
	if !ok {
		return record, errors.New("unknown gestation period for species")
	}
	record.Status = models.BreedingCompleted
	record.CompletedAt = now
	record.DueAt = now.Add(time.Duration(gestation) * 24 * time.Hour)
	return record, nil
}

// Advance promotes a completed record to born once gestation has elapsed.
// A record never reaches born from any other state.
func Advance(record models.BreedingRecord, now time.Time) models.BreedingRecord {
	if record.Status == models.BreedingCompleted && !record.DueAt.IsZero() && !now.Before(record.DueAt) {
		record.Status = models.BreedingBorn
	}
	return record
}

// related reports whether the two animals share an ancestor within
// AncestryDepth generations. Each animal counts as its own ancestor, so
// parent-child pairings are excluded as well.
func related(a, b models.Animal, pedigree map[string]models.Animal) bool {
	ancestorsA := ancestors(a, pedigree, AncestryDepth)
	for id := range ancestors(b, pedigree, AncestryDepth) {
		if ancestorsA[id] {
			return true
		}
	}
	return false
}

func ancestors(animal models.Animal, pedigree map[string]models.Animal, depth int) map[string]bool {
	seen := map[string]bool{animal.ID: true}
	frontier := []string{animal.SireID, animal.DamID}

	for gen := 0; gen < depth && len(frontier) > 0; gen++ {
		var next []string
		for _, id := range frontier {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			if parent, ok := pedigree[id]; ok {
				next = append(next, parent.SireID, parent.DamID)
			}
		}
		frontier = next
	}
	return seen
}
