package models

import "time"

// Metric identifies the measured quantity of an Observation.
type Metric string

const (
	MetricTemperature  Metric = "temperature"
	MetricFeedIntake   Metric = "feed_intake"
	MetricSoilMoisture Metric = "soil_moisture"
	MetricNDVI         Metric = "ndvi"
	MetricRainfall     Metric = "rainfall"
)

// Observation is one timestamped measurement attached to an entity.
type Observation struct {
	EntityID   string    `json:"entity_id"`
	Metric     Metric    `json:"metric"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}
