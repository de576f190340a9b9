package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

func always(key string) Trigger {
	return Trigger{
		ID:        key,
		Condition: func(models.AdvisorContext) bool { return true },
		Action: func(models.AdvisorContext) *models.Advice {
			return &models.Advice{Key: key, Title: key, Message: "msg"}
		},
	}
}

func newTestDispatcher(interval time.Duration) (*Dispatcher, *time.Time) {
	d := NewDispatcher(interval, nil)
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }
	return d, &clock
}

func TestCheck_FirstMatchWins(t *testing.T) {
	d, _ := newTestDispatcher(10 * time.Second)
	d.Register(always("first"))
	d.Register(always("second"))

	advice := d.Check(models.AdvisorContext{})
	require.NotNil(t, advice)
	assert.Equal(t, "first", advice.Key)
}

func TestCheck_RateLimitSharedAcrossTriggers(t *testing.T) {
	d, clock := newTestDispatcher(10 * time.Second)
	d.Register(always("a"))
	d.Register(always("b"))

	require.NotNil(t, d.Check(models.AdvisorContext{}))

	// Immediately re-running returns nil: no second trigger may fire inside
	// the interval, even a different one.
	assert.Nil(t, d.Check(models.AdvisorContext{}))

	*clock = clock.Add(9 * time.Second)
	assert.Nil(t, d.Check(models.AdvisorContext{}))

	*clock = clock.Add(2 * time.Second)
	assert.NotNil(t, d.Check(models.AdvisorContext{}))
}

func TestCheck_ConditionFalseFallsThrough(t *testing.T) {
	d, _ := newTestDispatcher(time.Second)
	never := always("never")
	never.Condition = func(models.AdvisorContext) bool { return false }
	d.Register(never)
	d.Register(always("fallback"))

	advice := d.Check(models.AdvisorContext{})
	require.NotNil(t, advice)
	assert.Equal(t, "fallback", advice.Key)
}

func TestCheck_NilActionResultFallsThrough(t *testing.T) {
	d, _ := newTestDispatcher(time.Second)
	silent := always("silent")
	silent.Action = func(models.AdvisorContext) *models.Advice { return nil }
	d.Register(silent)
	d.Register(always("spoken"))

	advice := d.Check(models.AdvisorContext{})
	require.NotNil(t, advice)
	assert.Equal(t, "spoken", advice.Key)
}

func TestCheck_OneShotFiresOnceUntilReset(t *testing.T) {
	d, clock := newTestDispatcher(time.Second)
	once := always("once")
	once.OneShot = true
	d.Register(once)

	require.NotNil(t, d.Check(models.AdvisorContext{}))

	*clock = clock.Add(time.Minute)
	assert.Nil(t, d.Check(models.AdvisorContext{}), "one-shot trigger must stay silent")

	d.Reset()
	require.NotNil(t, d.Check(models.AdvisorContext{}))
}

func TestDefaults_WelcomeFiresFirstForNewSession(t *testing.T) {
	d, _ := newTestDispatcher(time.Second)
	for _, trig := range Defaults() {
		d.Register(trig)
	}

	ctx := models.AdvisorContext{SessionMinutes: 0.2}
	advice := d.Check(ctx)
	require.NotNil(t, advice)
	assert.Equal(t, "welcome", advice.Key)
}

func TestDefaults_IrrigationHintOnDryPlot(t *testing.T) {
	d, clock := newTestDispatcher(time.Second)
	for _, trig := range Defaults() {
		d.Register(trig)
	}

	ctx := models.AdvisorContext{
		SessionMinutes: 3,
		Plots:          []models.Plot{{ID: "p1", SoilMoisturePct: 22}},
		VisitedAreas:   map[string]bool{"pastures": true},
	}
	advice := d.Check(ctx)
	require.NotNil(t, advice)
	assert.Equal(t, "explain_irrigation", advice.Key)

	// One-shot: the same hint never repeats within a session.
	*clock = clock.Add(time.Minute)
	next := d.Check(ctx)
	assert.Nil(t, next)
}
