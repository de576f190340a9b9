// Package score holds the scoring functions: deterministic weighted sums over
// a fixed attribute set. Attributes are clamped to [0,100] before weighting
// and a missing attribute contributes the neutral value 50. The weights of
// any one function sum to 1.0.
package score

import (
	"math/rand"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

const neutral = 50.0

// traitVariance bounds the random jitter applied to biological projections,
// in absolute points.
const traitVariance = 5.0

var geneticWeights = map[string]float64{
	"milk_yield":         0.30,
	"fertility":          0.25,
	"disease_resistance": 0.25,
	"longevity":          0.20,
}

var sustainabilityWeights = map[string]float64{
	"water_efficiency": 0.35,
	"soil_health":      0.35,
	"biodiversity":     0.30,
}

// Genetic scores an animal's breeding value from its trait profile.
func Genetic(animal models.Animal) float64 {
	return weightedSum(animal.Traits, geneticWeights)
}

// Sustainability scores a plot's environmental profile.
func Sustainability(attrs map[string]float64) float64 {
	return weightedSum(attrs, sustainabilityWeights)
}

// Compatibility scores a candidate breeding pair. Half the score is the mean
// genetic value of the parents, half rewards trait complementarity (a strong
// trait in one parent covering a weak one in the other). Biological variance
// is modeled as bounded jitter from rng; callers needing determinism inject a
// seeded source.
func Compatibility(sire, dam models.Animal, rng *rand.Rand) float64 {
	base := (Genetic(sire) + Genetic(dam)) / 2

	var spread, n float64
	for trait := range geneticWeights {
		s := clamp(lookup(sire.Traits, trait))
		d := clamp(lookup(dam.Traits, trait))
		diff := s - d
		if diff < 0 {
			diff = -diff
		}
		spread += diff
		n++
	}
	// Moderate spread is complementary; extremes (identical or opposite
	// profiles) score lower.
	complement := 100 - abs(spread/n-25)*2

	return clamp(base*0.5 + clamp(complement)*0.5 + jitter(rng))
}

// ProjectOffspring projects offspring traits as the midparent value per trait
// plus bounded variance. Output traits are clamped to [0,100].
func ProjectOffspring(sire, dam models.Animal, rng *rand.Rand) map[string]float64 {
	projected := make(map[string]float64, len(geneticWeights))
	for trait := range geneticWeights {
		mid := (clamp(lookup(sire.Traits, trait)) + clamp(lookup(dam.Traits, trait))) / 2
		projected[trait] = clamp(mid + jitter(rng))
	}
	return projected
}

func weightedSum(attrs, weights map[string]float64) float64 {
	var total float64
	for name, weight := range weights {
		total += clamp(lookup(attrs, name)) * weight
	}
	return clamp(total)
}

func lookup(attrs map[string]float64, name string) float64 {
	if attrs == nil {
		return neutral
	}
	value, ok := attrs[name]
	if !ok {
		return neutral
	}
	return value
}

func jitter(rng *rand.Rand) float64 {
	if rng == nil {
		return 0
	}
	return (rng.Float64()*2 - 1) * traitVariance
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
