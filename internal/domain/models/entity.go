package models

// Species enumerates the livestock kinds the advisor knows thresholds for.
type Species string

const (
	SpeciesCattle  Species = "cattle"
	SpeciesSheep   Species = "sheep"
	SpeciesGoat    Species = "goat"
	SpeciesChicken Species = "chicken"
)

// Animal represents one head of livestock tracked by the state store.
// Traits are normalized 0-100 scores keyed by trait name (milk_yield,
// fertility, disease_resistance, longevity, growth_rate).
type Animal struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Species      Species            `json:"species"`
	Sex          string             `json:"sex"`
	SireID       string             `json:"sire_id,omitempty"`
	DamID        string             `json:"dam_id,omitempty"`
	Traits       map[string]float64 `json:"traits"`
	AgeMonths    int                `json:"age_months"`
	PastureID    string             `json:"pasture_id,omitempty"`
	HealthStatus string             `json:"health_status"`
}

// Plot is a cultivated field parcel with its latest satellite-derived readings.
type Plot struct {
	ID              string  `json:"id"`
	Crop            string  `json:"crop"`
	Planted         bool    `json:"planted"`
	AreaHa          float64 `json:"area_ha"`
	SoilMoisturePct float64 `json:"soil_moisture_pct"`
	NDVI            float64 `json:"ndvi"`
	SoilHealth      float64 `json:"soil_health"`
}

// Pasture is a grazing area shared by a group of animals.
type Pasture struct {
	ID          string  `json:"id"`
	NDVI        float64 `json:"ndvi"`
	BiomassKgHa float64 `json:"biomass_kg_ha"`
	Stocked     int     `json:"stocked"`
	Capacity    int     `json:"capacity"`
}
