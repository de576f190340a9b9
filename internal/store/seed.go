package store

import (
	"time"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

// SeedDemo loads the starter farm a new player begins with: three plots, two
// pastures and a small mixed herd with a week of feed-intake history.
func SeedDemo(s *Store, now time.Time) {
	plots := []models.Plot{
		{ID: "plot-a", Crop: "rice", Planted: true, AreaHa: 1.2, SoilMoisturePct: 42, NDVI: 0.62, SoilHealth: 70},
		{ID: "plot-b", Crop: "wheat", Planted: true, AreaHa: 0.8, SoilMoisturePct: 35, NDVI: 0.48, SoilHealth: 60},
		{ID: "plot-c", Crop: "", Planted: false, AreaHa: 1.0, SoilMoisturePct: 38, NDVI: 0.30, SoilHealth: 55},
	}
	for _, p := range plots {
		s.PutPlot(p)
	}

	pastures := []models.Pasture{
		{ID: "pasture-north", NDVI: 0.55, BiomassKgHa: 2400, Stocked: 4, Capacity: 6},
		{ID: "pasture-south", NDVI: 0.40, BiomassKgHa: 1600, Stocked: 5, Capacity: 5},
	}
	for _, p := range pastures {
		s.PutPasture(p)
	}

	animals := []models.Animal{
		{
			ID: "cow-bela", Name: "Bela", Species: models.SpeciesCattle, Sex: "female",
			Traits:    map[string]float64{"milk_yield": 78, "fertility": 72, "disease_resistance": 65, "longevity": 70},
			AgeMonths: 36, PastureID: "pasture-north", HealthStatus: "healthy",
		},
		{
			ID: "bull-raja", Name: "Raja", Species: models.SpeciesCattle, Sex: "male",
			Traits:    map[string]float64{"milk_yield": 60, "fertility": 80, "disease_resistance": 75, "longevity": 68},
			AgeMonths: 48, PastureID: "pasture-north", HealthStatus: "healthy",
		},
		{
			ID: "goat-mina", Name: "Mina", Species: models.SpeciesGoat, Sex: "female",
			Traits:    map[string]float64{"milk_yield": 55, "fertility": 66, "disease_resistance": 70},
			AgeMonths: 20, PastureID: "pasture-south", HealthStatus: "vaccination_due",
		},
	}
	for _, a := range animals {
		s.PutAnimal(a)
		for i := 7; i >= 1; i-- {
			s.AppendObservation(models.Observation{
				EntityID:   a.ID,
				Metric:     models.MetricFeedIntake,
				Value:      12,
				RecordedAt: now.AddDate(0, 0, -i),
			})
		}
	}
}
