// Package evaluate contains the condition evaluators: pure functions that
// read an entity snapshot plus its recent observations and return anomaly
// findings. Evaluators never persist, alert or mutate anything.
package evaluate

import (
	"fmt"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/thresholds"
)

// Plot inspects one plot's soil and vegetation readings.
func Plot(plot models.Plot, field models.FieldConditions) []models.Anomaly {
	anomalies := []models.Anomaly{}

	moisture := plot.SoilMoisturePct
	switch {
	case moisture < thresholds.SoilMoistureCriticalPct:
		severity := models.SeverityHigh
		if field.RainfallMM7d < thresholds.DrySpellRainfallMM7d {
			// No rain coming either; the plot cannot recover on its own.
			severity = models.SeverityCritical
		}
		anomalies = append(anomalies, models.Anomaly{
			Type:           "soil_dry",
			Severity:       severity,
			EntityID:       plot.ID,
			Message:        fmt.Sprintf("Plot %s soil moisture at %.1f%%, below the %.0f%% critical line.", plot.ID, moisture, thresholds.SoilMoistureCriticalPct),
			Recommendation: "Irrigate immediately.",
		})
	case moisture < thresholds.SoilMoistureLowPct:
		anomalies = append(anomalies, models.Anomaly{
			Type:           "soil_low",
			Severity:       models.SeverityMedium,
			EntityID:       plot.ID,
			Message:        fmt.Sprintf("Plot %s soil moisture at %.1f%%, trending dry.", plot.ID, moisture),
			Recommendation: "Schedule irrigation within the next day.",
		})
	case moisture > thresholds.SoilMoistureWaterlogged:
		anomalies = append(anomalies, models.Anomaly{
			Type:           "soil_waterlogged",
			Severity:       models.SeverityMedium,
			EntityID:       plot.ID,
			Message:        fmt.Sprintf("Plot %s is waterlogged at %.1f%% moisture.", plot.ID, moisture),
			Recommendation: "Hold irrigation and check drainage.",
		})
	}

	if plot.Planted && plot.NDVI > 0 && plot.NDVI < thresholds.NDVIStressed {
		anomalies = append(anomalies, models.Anomaly{
			Type:           "vegetation_stressed",
			Severity:       models.SeverityMedium,
			EntityID:       plot.ID,
			Message:        fmt.Sprintf("Plot %s NDVI %.2f indicates stressed vegetation.", plot.ID, plot.NDVI),
			Recommendation: "Apply fertilizer and verify irrigation coverage.",
		})
	}

	return anomalies
}

// Pasture judges grazing pressure from vegetation index, biomass and stocking.
func Pasture(pasture models.Pasture) []models.Anomaly {
	anomalies := []models.Anomaly{}

	overgrazed := pasture.NDVI > 0 && pasture.NDVI < thresholds.NDVIOvergrazed
	depleted := pasture.BiomassKgHa > 0 && pasture.BiomassKgHa < thresholds.BiomassFloorKgHa
	if overgrazed || depleted {
		severity := models.SeverityMedium
		if pasture.Capacity > 0 && pasture.Stocked > pasture.Capacity {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, models.Anomaly{
			Type:           "pasture_overgrazed",
			Severity:       severity,
			EntityID:       pasture.ID,
			Message:        fmt.Sprintf("Pasture %s is overgrazed (NDVI %.2f, biomass %.0f kg/ha, %d/%d stocked).", pasture.ID, pasture.NDVI, pasture.BiomassKgHa, pasture.Stocked, pasture.Capacity),
			Recommendation: "Rotate livestock to a recovered pasture.",
		})
	}

	return anomalies
}

// Animal checks a single animal against its species thresholds and its own
// observation history. Trend anomalies (feed-intake drop) require at least
// MinTrendHistory prior observations; with fewer the finding is suppressed so
// a thin history cannot trip a false positive.
func Animal(animal models.Animal, history []models.Observation) []models.Anomaly {
	anomalies := []models.Anomaly{}

	if temp, ok := latest(history, models.MetricTemperature); ok {
		if band, known := thresholds.BodyTemperature[animal.Species]; known {
			if temp.Value > band.Max || temp.Value < band.Min {
				severity := models.SeverityMedium
				if temp.Value > band.Max+1.0 || temp.Value < band.Min-1.0 {
					severity = models.SeverityHigh
				}
				anomalies = append(anomalies, models.Anomaly{
					Type:           "temperature",
					Severity:       severity,
					EntityID:       animal.ID,
					Message:        fmt.Sprintf("%s temperature %.1f°C outside the %.1f-%.1f°C band for %s.", animal.Name, temp.Value, band.Min, band.Max, animal.Species),
					Recommendation: "Isolate the animal and call the veterinarian.",
				})
			}
		}
	}

	if anomaly, ok := feedIntakeDrop(animal, history); ok {
		anomalies = append(anomalies, anomaly)
	}

	return anomalies
}

func feedIntakeDrop(animal models.Animal, history []models.Observation) (models.Anomaly, bool) {
	intakes := filter(history, models.MetricFeedIntake)
	if len(intakes) < thresholds.MinTrendHistory+1 {
		return models.Anomaly{}, false
	}

	current := intakes[len(intakes)-1]
	prior := intakes[:len(intakes)-1]
	// Baseline is the trailing week of prior readings.
	if len(prior) > 7 {
		prior = prior[len(prior)-7:]
	}

	var sum float64
	for _, obs := range prior {
		sum += obs.Value
	}
	baseline := sum / float64(len(prior))
	if baseline <= 0 {
		return models.Anomaly{}, false
	}

	drop := (baseline - current.Value) / baseline
	if drop < thresholds.FeedIntakeDropPct {
		return models.Anomaly{}, false
	}

	severity := models.SeverityMedium
	if drop >= 0.30 {
		severity = models.SeverityHigh
	}

	return models.Anomaly{
		Type:           "feed_intake",
		Severity:       severity,
		EntityID:       animal.ID,
		Message:        fmt.Sprintf("%s feed intake dropped %.0f%% versus its trailing average (%.1f vs %.1f).", animal.Name, drop*100, current.Value, baseline),
		Recommendation: "Check for illness, heat stress or feed quality issues.",
	}, true
}

func filter(history []models.Observation, metric models.Metric) []models.Observation {
	out := make([]models.Observation, 0, len(history))
	for _, obs := range history {
		if obs.Metric == metric {
			out = append(out, obs)
		}
	}
	return out
}

func latest(history []models.Observation, metric models.Metric) (models.Observation, bool) {
	matched := filter(history, metric)
	if len(matched) == 0 {
		return models.Observation{}, false
	}
	return matched[len(matched)-1], true
}
