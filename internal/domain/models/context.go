package models

import "time"

// FieldConditions is the external sensor snapshot injected into each tick:
// satellite-derived soil and vegetation readings plus local weather.
type FieldConditions struct {
	SoilMoisturePct float64   `json:"soil_moisture_pct"`
	RainfallMM7d    float64   `json:"rainfall_mm_7d"`
	NDVI            float64   `json:"ndvi"`
	TempC           float64   `json:"temp_c"`
	Humidity        float64   `json:"humidity"`
	Source          string    `json:"source"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// AdvisorContext aggregates everything evaluators, generators and triggers
// read during one tick. The core never fetches this itself; callers build it
// from the state store and the sensor layer.
type AdvisorContext struct {
	Now      time.Time
	Animals  []Animal
	Plots    []Plot
	Pastures []Pasture
	Field    FieldConditions

	// History holds recent observations keyed by entity id, newest last.
	History map[string][]Observation

	// Player progress flags consumed by coaching triggers.
	VisitedAreas   map[string]bool
	CompletedTasks int
	SessionMinutes float64
}

// Advice is a coaching message produced by a fired trigger.
type Advice struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Area    string `json:"area,omitempty"`
}
