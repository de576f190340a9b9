// Package thresholds holds the per-species and per-crop constant tables the
// condition evaluators judge against.
package thresholds

import "github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"

// TemperatureRange is the normal body temperature band for a species, in °C.
type TemperatureRange struct {
	Min float64
	Max float64
}

// BodyTemperature maps each species to its healthy temperature band.
var BodyTemperature = map[models.Species]TemperatureRange{
	models.SpeciesCattle:  {Min: 38.0, Max: 39.5},
	models.SpeciesSheep:   {Min: 38.5, Max: 40.0},
	models.SpeciesGoat:    {Min: 38.5, Max: 40.5},
	models.SpeciesChicken: {Min: 40.5, Max: 42.0},
}

// GestationDays maps each species to its gestation (or incubation) period.
var GestationDays = map[models.Species]int{
	models.SpeciesCattle:  283,
	models.SpeciesSheep:   152,
	models.SpeciesGoat:    150,
	models.SpeciesChicken: 21,
}

// Soil moisture bands, volumetric percent.
const (
	SoilMoistureCriticalPct = 20.0
	SoilMoistureLowPct      = 30.0
	SoilMoistureWaterlogged = 80.0
)

// Rainfall below this over the trailing week marks a dry spell.
const DrySpellRainfallMM7d = 5.0

// Vegetation bands (NDVI, 0-1).
const (
	NDVIOvergrazed = 0.30
	NDVIStressed   = 0.45
	NDVIHealthy    = 0.60
)

// Pasture biomass floor in kg/ha below which grazing should rotate out.
const BiomassFloorKgHa = 1200.0

// FeedIntakeDropPct is the relative drop versus the trailing average that
// counts as anomalous.
const FeedIntakeDropPct = 0.25

// MinTrendHistory is the minimum number of prior observations required before
// any trend-based anomaly may be produced. Fewer than this and the evaluator
// stays silent regardless of the values.
const MinTrendHistory = 3

// Heat stress onset for livestock, ambient °C.
const HeatStressTempC = 35.0
