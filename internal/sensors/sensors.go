// Package sensors assembles the external field-condition snapshot injected
// into each advisor tick. Readings resolve through a fallback chain: live
// NASA fetch, then the last cached value, then synthetic data, so a slow or
// failed upstream never blocks the tick.
package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/pkg/clients/nasa"
)

const cacheTTL = 6 * time.Hour

// Service resolves field conditions for a point. The redis client is
// optional; without it the chain is live -> synthetic.
type Service struct {
	nasaClient nasa.Client
	cache      *redis.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a sensor service. Any dependency may be nil.
func NewService(nasaClient nasa.Client, cache *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		nasaClient: nasaClient,
		cache:      cache,
		logger:     logger,
		now:        time.Now,
	}
}

// Conditions returns the current field snapshot for the given point.
func (s *Service) Conditions(ctx context.Context, lat, lon float64) models.FieldConditions {
	now := s.now()

	if s.nasaClient != nil {
		end := now
		start := end.AddDate(0, 0, -7)
		weather, err := s.nasaClient.FetchDailyWeather(ctx, lat, lon, start, end)
		if err == nil {
			cond := s.fromWeather(weather, now)
			s.storeCache(ctx, lat, lon, cond)
			return cond
		}
		s.logger.Warn("live weather fetch failed, falling back", zap.Error(err))
	}

	if cond, ok := s.loadCache(ctx, lat, lon); ok {
		cond.Source = "cache"
		return cond
	}

	return s.synthetic(lat, now)
}

// fromWeather derives the satellite proxies (soil moisture, NDVI) that this
// slice has no live feed for. The formulas follow the synthetic generators in
// the original data scripts: moisture tracks recent rainfall and humidity,
// vegetation tracks moisture.
func (s *Service) fromWeather(weather *nasa.DailyWeather, now time.Time) models.FieldConditions {
	moisture := clampRange(12+weather.RainfallMM7d*1.8+weather.Humidity*0.15, 5, 95)
	ndvi := clampRange(0.15+moisture/150, 0.05, 0.9)

	return models.FieldConditions{
		SoilMoisturePct: moisture,
		RainfallMM7d:    weather.RainfallMM7d,
		NDVI:            ndvi,
		TempC:           weather.TempC,
		Humidity:        weather.Humidity,
		Source:          "nasa-power",
		FetchedAt:       now,
	}
}

// synthetic generates plausible seasonal readings when neither the live feed
// nor the cache is available. Monsoon seasonality follows the Bangladesh
// climate the original training scripts modeled.
func (s *Service) synthetic(lat float64, now time.Time) models.FieldConditions {
	day := float64(now.YearDay())
	monsoon := seasonal(day, 160, 90) // peaks mid-June

	rainfall := 2 + monsoon*40
	humidity := 55 + monsoon*30
	// Warmer near the equator, peaking pre-monsoon.
	temp := 34 - absf(lat)*0.25 + seasonal(day, 135, 120)*8
	moisture := clampRange(15+rainfall*1.5+humidity*0.1, 5, 95)

	return models.FieldConditions{
		SoilMoisturePct: moisture,
		RainfallMM7d:    rainfall,
		NDVI:            clampRange(0.2+moisture/160, 0.05, 0.9),
		TempC:           temp,
		Humidity:        humidity,
		Source:          "synthetic",
		FetchedAt:       now,
	}
}

func (s *Service) storeCache(ctx context.Context, lat, lon float64, cond models.FieldConditions) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(cond)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(lat, lon), payload, cacheTTL).Err(); err != nil {
		s.logger.Debug("sensor cache write failed", zap.Error(err))
	}
}

func (s *Service) loadCache(ctx context.Context, lat, lon float64) (models.FieldConditions, bool) {
	if s.cache == nil {
		return models.FieldConditions{}, false
	}
	payload, err := s.cache.Get(ctx, cacheKey(lat, lon)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("sensor cache read failed", zap.Error(err))
		}
		return models.FieldConditions{}, false
	}
	var cond models.FieldConditions
	if err := json.Unmarshal(payload, &cond); err != nil {
		return models.FieldConditions{}, false
	}
	return cond, true
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("sensors:field:%.2f:%.2f", lat, lon)
}

// seasonal is a 0-1 bell over the year centered on peakDay with the given
// width in days.
func seasonal(day, peakDay, width float64) float64 {
	d := day - peakDay
	if d > 182.5 {
		d -= 365
	}
	if d < -182.5 {
		d += 365
	}
	v := 1 - (d*d)/(width*width)
	if v < 0 {
		return 0
	}
	return v
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
