package generate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

func emptyContext() models.AdvisorContext {
	return models.AdvisorContext{Now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
}

func TestGenerators_EmptyContextReturnsEmptyNonNil(t *testing.T) {
	for i, gen := range All() {
		out := gen(emptyContext())
		assert.NotNil(t, out.Recommendations, "generator %d recommendations must never be nil", i)
		assert.NotNil(t, out.Alerts, "generator %d alerts must never be nil", i)
		assert.Empty(t, out.Recommendations)
	}
}

func TestGenerators_EveryRecommendationHasActions(t *testing.T) {
	ctx := emptyContext()
	ctx.Field = models.FieldConditions{SoilMoisturePct: 15, RainfallMM7d: 3, TempC: 37}
	ctx.Plots = []models.Plot{
		{ID: "p1", SoilMoisturePct: 12, Planted: true, NDVI: 0.4, AreaHa: 1},
		{ID: "p2", SoilMoisturePct: 40, Planted: false},
	}
	ctx.Pastures = []models.Pasture{
		{ID: "g1", NDVI: 0.2, BiomassKgHa: 800, Stocked: 6, Capacity: 4},
	}
	ctx.Animals = []models.Animal{
		{ID: "c1", Name: "Bela", Species: models.SpeciesCattle, Sex: "female", HealthStatus: "vaccination_due",
			Traits: map[string]float64{"milk_yield": 90, "fertility": 90, "disease_resistance": 90, "longevity": 90}},
		{ID: "c2", Name: "Raja", Species: models.SpeciesCattle, Sex: "male", HealthStatus: "healthy",
			Traits: map[string]float64{"milk_yield": 85, "fertility": 85, "disease_resistance": 85, "longevity": 85}},
	}

	for i, gen := range All() {
		for _, rec := range gen(ctx).Recommendations {
			assert.NotEmpty(t, rec.Actions, "generator %d emitted %q with no actions", i, rec.Type)
			assert.False(t, rec.CreatedAt.IsZero())
			assert.NotEmpty(t, rec.ID)
		}
	}
}

func TestCriticalIssues_DroughtScenario(t *testing.T) {
	// Average soil moisture around 15% and only 3mm of rain this week.
	ctx := emptyContext()
	ctx.Field = models.FieldConditions{SoilMoisturePct: 15, RainfallMM7d: 3}
	ctx.Plots = []models.Plot{
		{ID: "p1", SoilMoisturePct: 14},
		{ID: "p2", SoilMoisturePct: 16},
		{ID: "p3", SoilMoisturePct: 55},
	}

	out := CriticalIssues(ctx)
	require.Len(t, out.Recommendations, 1)

	rec := out.Recommendations[0]
	assert.Equal(t, models.PriorityCritical, rec.Priority)
	assert.Equal(t, "irrigation", rec.Type)

	// One water directive per plot below the dryness threshold, none for p3.
	targets := map[string]bool{}
	for _, action := range rec.Actions {
		assert.Equal(t, "water", action.Action)
		targets[action.TargetID] = true
	}
	assert.Equal(t, map[string]bool{"p1": true, "p2": true}, targets)

	require.Len(t, out.Alerts, 1)
	assert.Equal(t, models.SeverityCritical, out.Alerts[0].Severity)
}

func TestCriticalIssues_RainIncomingDowngradesPriority(t *testing.T) {
	ctx := emptyContext()
	ctx.Field = models.FieldConditions{RainfallMM7d: 30}
	ctx.Plots = []models.Plot{{ID: "p1", SoilMoisturePct: 14}}

	out := CriticalIssues(ctx)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, models.PriorityHigh, out.Recommendations[0].Priority)
	assert.Empty(t, out.Alerts)
}

func TestCriticalIssues_FeedIntakeAnomalyRaisesAlert(t *testing.T) {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	history := []models.Observation{}
	for i := 0; i < 7; i++ {
		history = append(history, models.Observation{
			EntityID: "c1", Metric: models.MetricFeedIntake, Value: 12, RecordedAt: base.AddDate(0, 0, i),
		})
	}
	history = append(history, models.Observation{
		EntityID: "c1", Metric: models.MetricFeedIntake, Value: 7.8, RecordedAt: base.AddDate(0, 0, 7),
	})

	ctx := emptyContext()
	ctx.Animals = []models.Animal{{ID: "c1", Name: "Bela", Species: models.SpeciesCattle}}
	ctx.History = map[string][]models.Observation{"c1": history}

	out := CriticalIssues(ctx)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "feed_intake", out.Alerts[0].Type)
	assert.Equal(t, models.SeverityHigh, out.Alerts[0].Severity)

	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "animal_health", out.Recommendations[0].Type)
}

func TestOptimizations_RotatesOvergrazedPasture(t *testing.T) {
	ctx := emptyContext()
	ctx.Pastures = []models.Pasture{{ID: "g1", NDVI: 0.25, BiomassKgHa: 900, Stocked: 3, Capacity: 6}}

	out := Optimizations(ctx)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "rotate_pasture", out.Recommendations[0].Type)
	assert.Equal(t, models.PriorityMedium, out.Recommendations[0].Priority)
}

func TestGrowthOpportunities_PlantIdlePlot(t *testing.T) {
	ctx := emptyContext()
	ctx.Plots = []models.Plot{
		{ID: "idle-ok", Planted: false, SoilMoisturePct: 45},
		{ID: "idle-dry", Planted: false, SoilMoisturePct: 10},
		{ID: "busy", Planted: true, SoilMoisturePct: 45},
	}

	out := GrowthOpportunities(ctx)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "plant", out.Recommendations[0].Type)
	assert.Equal(t, []string{"idle-ok"}, out.Recommendations[0].Locations)
}

func TestGrowthOpportunities_SuggestsBreedingPair(t *testing.T) {
	ctx := emptyContext()
	ctx.Animals = []models.Animal{
		{ID: "f1", Name: "Bela", Species: models.SpeciesCattle, Sex: "female",
			Traits: map[string]float64{"milk_yield": 90, "fertility": 88, "disease_resistance": 85, "longevity": 86}},
		{ID: "m1", Name: "Raja", Species: models.SpeciesCattle, Sex: "male",
			Traits: map[string]float64{"milk_yield": 82, "fertility": 90, "disease_resistance": 88, "longevity": 80}},
	}

	out := GrowthOpportunities(ctx)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "breeding", out.Recommendations[0].Type)
}

func TestPreventive_HeatStress(t *testing.T) {
	ctx := emptyContext()
	ctx.Field = models.FieldConditions{TempC: 38}
	ctx.Animals = []models.Animal{{ID: "c1", Species: models.SpeciesCattle}}

	out := Preventive(ctx)
	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "heat_stress", out.Recommendations[0].Type)

	// No livestock, no heat preparation advice.
	ctx.Animals = nil
	assert.Empty(t, Preventive(ctx).Recommendations)
}
