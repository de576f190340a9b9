package score

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

func TestWeightsSumToOne(t *testing.T) {
	for name, weights := range map[string]map[string]float64{
		"genetic":        geneticWeights,
		"sustainability": sustainabilityWeights,
	} {
		var sum float64
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "weights for %s must sum to 1.0", name)
	}
}

func TestGenetic_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		animal := models.Animal{Traits: map[string]float64{
			"milk_yield":         rng.Float64()*300 - 100,
			"fertility":          rng.Float64()*300 - 100,
			"disease_resistance": rng.Float64()*300 - 100,
			"longevity":          rng.Float64()*300 - 100,
		}}
		got := Genetic(animal)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestGenetic_MissingTraitsAreNeutral(t *testing.T) {
	assert.Equal(t, 50.0, Genetic(models.Animal{}))
	assert.Equal(t, 50.0, Genetic(models.Animal{Traits: map[string]float64{}}))
}

func TestGenetic_ClampsBeforeWeighting(t *testing.T) {
	inflated := models.Animal{Traits: map[string]float64{
		"milk_yield":         500,
		"fertility":          500,
		"disease_resistance": 500,
		"longevity":          500,
	}}
	assert.Equal(t, 100.0, Genetic(inflated))
}

func TestSustainability_Bounds(t *testing.T) {
	got := Sustainability(map[string]float64{
		"water_efficiency": 80,
		"soil_health":      -20,
		"biodiversity":     150,
	})
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}

func TestCompatibility_DeterministicWithSeededSource(t *testing.T) {
	sire := models.Animal{ID: "s", Traits: map[string]float64{"milk_yield": 70, "fertility": 80}}
	dam := models.Animal{ID: "d", Traits: map[string]float64{"milk_yield": 60, "fertility": 75}}

	a := Compatibility(sire, dam, rand.New(rand.NewSource(42)))
	b := Compatibility(sire, dam, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestCompatibility_JitterBounded(t *testing.T) {
	sire := models.Animal{ID: "s", Traits: map[string]float64{"milk_yield": 70}}
	dam := models.Animal{ID: "d", Traits: map[string]float64{"milk_yield": 60}}

	base := Compatibility(sire, dam, nil)
	for seed := int64(0); seed < 50; seed++ {
		got := Compatibility(sire, dam, rand.New(rand.NewSource(seed)))
		assert.InDelta(t, base, got, traitVariance, "jitter must stay within ±%v points", traitVariance)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestProjectOffspring_MidparentPlusBoundedVariance(t *testing.T) {
	sire := models.Animal{Traits: map[string]float64{
		"milk_yield": 80, "fertility": 60, "disease_resistance": 70, "longevity": 50,
	}}
	dam := models.Animal{Traits: map[string]float64{
		"milk_yield": 60, "fertility": 80, "disease_resistance": 50, "longevity": 70,
	}}

	projected := ProjectOffspring(sire, dam, rand.New(rand.NewSource(1)))
	require.Len(t, projected, len(geneticWeights))

	for trait, value := range projected {
		mid := (sire.Traits[trait] + dam.Traits[trait]) / 2
		assert.InDelta(t, mid, value, traitVariance, "trait %s strays beyond variance", trait)
		assert.GreaterOrEqual(t, value, 0.0)
		assert.LessOrEqual(t, value, 100.0)
	}
}
