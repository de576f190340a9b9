package evaluate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

func feedHistory(entityID string, values ...float64) []models.Observation {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	obs := make([]models.Observation, 0, len(values))
	for i, v := range values {
		obs = append(obs, models.Observation{
			EntityID:   entityID,
			Metric:     models.MetricFeedIntake,
			Value:      v,
			RecordedAt: base.AddDate(0, 0, i),
		})
	}
	return obs
}

func findAnomaly(anomalies []models.Anomaly, typ string) (models.Anomaly, bool) {
	for _, a := range anomalies {
		if a.Type == typ {
			return a, true
		}
	}
	return models.Anomaly{}, false
}

func TestPlot_SoilDryCriticalWhenNoRain(t *testing.T) {
	plot := models.Plot{ID: "p1", SoilMoisturePct: 15}
	field := models.FieldConditions{RainfallMM7d: 3}

	anomalies := Plot(plot, field)
	anomaly, ok := findAnomaly(anomalies, "soil_dry")
	require.True(t, ok)
	assert.Equal(t, models.SeverityCritical, anomaly.Severity)
}

func TestPlot_SoilDryHighWhenRainComing(t *testing.T) {
	plot := models.Plot{ID: "p1", SoilMoisturePct: 15}
	field := models.FieldConditions{RainfallMM7d: 25}

	anomalies := Plot(plot, field)
	anomaly, ok := findAnomaly(anomalies, "soil_dry")
	require.True(t, ok)
	assert.Equal(t, models.SeverityHigh, anomaly.Severity)
}

func TestPlot_HealthyMoistureNoAnomaly(t *testing.T) {
	plot := models.Plot{ID: "p1", SoilMoisturePct: 45, NDVI: 0.7, Planted: true}
	assert.Empty(t, Plot(plot, models.FieldConditions{}))
}

func TestPlot_Waterlogged(t *testing.T) {
	plot := models.Plot{ID: "p1", SoilMoisturePct: 88}
	_, ok := findAnomaly(Plot(plot, models.FieldConditions{}), "soil_waterlogged")
	assert.True(t, ok)
}

func TestPasture_Overgrazed(t *testing.T) {
	pasture := models.Pasture{ID: "g1", NDVI: 0.22, BiomassKgHa: 900, Stocked: 8, Capacity: 5}

	anomalies := Pasture(pasture)
	anomaly, ok := findAnomaly(anomalies, "pasture_overgrazed")
	require.True(t, ok)
	assert.Equal(t, models.SeverityHigh, anomaly.Severity, "overstocked pasture escalates severity")
}

func TestPasture_HealthyNoAnomaly(t *testing.T) {
	pasture := models.Pasture{ID: "g1", NDVI: 0.6, BiomassKgHa: 2500, Stocked: 3, Capacity: 6}
	assert.Empty(t, Pasture(pasture))
}

func TestAnimal_TemperatureOutsideSpeciesBand(t *testing.T) {
	cow := models.Animal{ID: "c1", Name: "Bela", Species: models.SpeciesCattle}
	history := []models.Observation{
		{EntityID: "c1", Metric: models.MetricTemperature, Value: 41.2, RecordedAt: time.Now()},
	}

	anomalies := Animal(cow, history)
	anomaly, ok := findAnomaly(anomalies, "temperature")
	require.True(t, ok)
	assert.Equal(t, models.SeverityHigh, anomaly.Severity)
}

func TestAnimal_TemperatureWithinBand(t *testing.T) {
	cow := models.Animal{ID: "c1", Species: models.SpeciesCattle}
	history := []models.Observation{
		{EntityID: "c1", Metric: models.MetricTemperature, Value: 38.7, RecordedAt: time.Now()},
	}
	assert.Empty(t, Animal(cow, history))
}

func TestAnimal_FeedDropRequiresMinimumHistory(t *testing.T) {
	cow := models.Animal{ID: "c1", Name: "Bela", Species: models.SpeciesCattle}

	// Two prior readings then a 50% crash: values qualify, history does not.
	history := feedHistory("c1", 12, 12, 6)
	_, ok := findAnomaly(Animal(cow, history), "feed_intake")
	assert.False(t, ok, "trend anomaly must be suppressed below 3 prior observations")

	// A third prior reading unlocks the evaluator.
	history = feedHistory("c1", 12, 12, 12, 6)
	_, ok = findAnomaly(Animal(cow, history), "feed_intake")
	assert.True(t, ok)
}

func TestAnimal_FeedDropSeverity(t *testing.T) {
	cow := models.Animal{ID: "c1", Name: "Bela", Species: models.SpeciesCattle}

	// 35% below the trailing average is a high-severity anomaly.
	history := feedHistory("c1", 12, 12, 12, 12, 12, 12, 12, 7.8)
	anomaly, ok := findAnomaly(Animal(cow, history), "feed_intake")
	require.True(t, ok)
	assert.Equal(t, models.SeverityHigh, anomaly.Severity)

	// A mild dip stays below the anomaly line.
	history = feedHistory("c1", 12, 12, 12, 12, 11)
	_, ok = findAnomaly(Animal(cow, history), "feed_intake")
	assert.False(t, ok)
}
