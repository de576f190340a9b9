package models

import (
	"encoding/json"
	"time"
)

// SettingsVersion is one immutable version of an admin settings document.
// Updates and rollbacks always append a new version; history is never
// rewritten in place.
type SettingsVersion struct {
	Category  string          `bson:"category" json:"category"`
	Version   int             `bson:"version" json:"version"`
	Payload   json.RawMessage `bson:"payload" json:"payload"`
	UpdatedBy string          `bson:"updated_by" json:"updated_by"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
}

// AuditEntry records one admin mutation. Audit writes are best-effort: a
// failed write never rolls back the settings change it describes.
type AuditEntry struct {
	Timestamp  time.Time         `bson:"timestamp" json:"timestamp"`
	UserID     string            `bson:"user_id" json:"user_id"`
	Action     string            `bson:"action" json:"action"`
	Resource   string            `bson:"resource" json:"resource"`
	ResourceID string            `bson:"resource_id" json:"resource_id"`
	Outcome    string            `bson:"outcome" json:"outcome"`
	Metadata   map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Severity   Severity          `bson:"severity" json:"severity"`
}

// DailySnapshot aggregates one day of advisor activity for persistence and
// the spreadsheet export.
type DailySnapshot struct {
	Date             time.Time `bson:"date" json:"date"`
	Recommendations  int       `bson:"recommendations" json:"recommendations"`
	CriticalAlerts   int       `bson:"critical_alerts" json:"critical_alerts"`
	MeanSoilMoisture float64   `bson:"mean_soil_moisture" json:"mean_soil_moisture"`
	RainfallMM7d     float64   `bson:"rainfall_mm_7d" json:"rainfall_mm_7d"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
