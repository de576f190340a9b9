package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Farm     FarmConfig
	Advisor  AdvisorConfig
	NASA     NASAConfig
	Sheets   SheetsConfig
	AI       AIConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// FarmConfig locates the farm for satellite lookups.
type FarmConfig struct {
	Latitude  float64
	Longitude float64
}

// AdvisorConfig tunes the rule engine tick.
type AdvisorConfig struct {
	TickSchedule       string
	TriggerMinInterval time.Duration
	RandomSeed         int64
}

// NASAConfig holds the open-data endpoint settings.
type NASAConfig struct {
	PowerBaseURL string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
// Both fields empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// AIConfig holds settings for LLM providers.
type AIConfig struct {
	AnthropicKey string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// RedisConfig holds the optional sensor cache settings. An empty address
// disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SnapshotConfig holds the daily export schedule.
type SnapshotConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	lat, err := getenvFloat("FARM_LATITUDE", 23.5)
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("FARM_LONGITUDE", 90.5)
	if err != nil {
		return nil, err
	}

	minInterval, err := getenvDuration("TRIGGER_MIN_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}

	seed, err := getenvInt64("ADVISOR_RANDOM_SEED", 0)
	if err != nil {
		return nil, err
	}

	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Farm: FarmConfig{
			Latitude:  lat,
			Longitude: lon,
		},
		Advisor: AdvisorConfig{
			TickSchedule:       getenvWithDefault("ADVISOR_TICK_SCHEDULE", "@every 30s"),
			TriggerMinInterval: minInterval,
			RandomSeed:         seed,
		},
		NASA: NASAConfig{
			PowerBaseURL: getenvWithDefault("NASA_POWER_BASE_URL", "https://power.larc.nasa.gov"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "ecosphere"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Farm.Latitude < -90 || c.Farm.Latitude > 90 {
		return errors.New("FARM_LATITUDE must be within [-90, 90]")
	}
	if c.Farm.Longitude < -180 || c.Farm.Longitude > 180 {
		return errors.New("FARM_LONGITUDE must be within [-180, 180]")
	}

	if c.Advisor.TickSchedule == "" {
		return errors.New("ADVISOR_TICK_SCHEDULE must be provided")
	}
	if c.Advisor.TriggerMinInterval <= 0 {
		return errors.New("TRIGGER_MIN_INTERVAL must be positive")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	// Sheets export is optional but must be configured as a pair.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be set together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

func getenvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getenvInt64(key string, fallback int64) (int64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 10s: %w", key, err)
	}
	return value, nil
}
