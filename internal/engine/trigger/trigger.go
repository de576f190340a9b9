// Package trigger implements the rate-limited coaching dispatcher. Triggers
// are registered once at startup and evaluated in registration order every
// tick; the first trigger whose condition holds and whose action returns
// advice wins, and no other trigger may fire until the minimum interval has
// elapsed. The interval is enforced by a single timestamp shared across all
// triggers, so at most one coaching message surfaces per interval
// system-wide.
package trigger

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

// DefaultMinInterval is the game-time gap enforced between any two firings.
const DefaultMinInterval = 10 * time.Second

// Trigger pairs a stateless condition with the advice it produces. One-shot
// triggers fire at most once per session, tracked by ID until Reset.
type Trigger struct {
	ID        string
	OneShot   bool
	Condition func(models.AdvisorContext) bool
	Action    func(models.AdvisorContext) *models.Advice
}

// Dispatcher owns the registered triggers and the shared rate-limit state.
type Dispatcher struct {
	mu          sync.Mutex
	triggers    []Trigger
	minInterval time.Duration
	lastFired   time.Time
	firedKeys   map[string]bool
	now         func() time.Time
	logger      *zap.Logger
}

// NewDispatcher builds a dispatcher with the given minimum firing interval.
// A non-positive interval falls back to DefaultMinInterval.
func NewDispatcher(minInterval time.Duration, logger *zap.Logger) *Dispatcher {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		minInterval: minInterval,
		firedKeys:   make(map[string]bool),
		now:         time.Now,
		logger:      logger,
	}
}

// Register appends a trigger. Registration order is evaluation order.
func (d *Dispatcher) Register(t Trigger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.triggers = append(d.triggers, t)
}

// Check evaluates the triggers against the context and returns the advice of
// the first one that fires, or nil. First-match-wins: a matching trigger
// registered earlier suppresses every later one for this tick.
func (d *Dispatcher) Check(ctx models.AdvisorContext) *models.Advice {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if !d.lastFired.IsZero() && now.Sub(d.lastFired) < d.minInterval {
		return nil
	}

	for _, t := range d.triggers {
		if t.OneShot && d.firedKeys[t.ID] {
			continue
		}
		if t.Condition != nil && !t.Condition(ctx) {
			continue
		}
		if t.Action == nil {
			continue
		}
		advice := t.Action(ctx)
		if advice == nil {
			continue
		}

		d.lastFired = now
		if t.OneShot {
			d.firedKeys[t.ID] = true
		}
		d.logger.Debug("trigger fired", zap.String("trigger", t.ID), zap.String("advice", advice.Key))
		return advice
	}

	return nil
}

// Reset clears the one-shot firing history, typically at the start of a new
// session.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.firedKeys = make(map[string]bool)
	d.lastFired = time.Time{}
}

// Defaults returns the built-in coaching triggers in their intended order.
func Defaults() []Trigger {
	return []Trigger{
		{
			ID:      "welcome",
			OneShot: true,
			Condition: func(ctx models.AdvisorContext) bool {
				return ctx.SessionMinutes < 1
			},
			Action: func(models.AdvisorContext) *models.Advice {
				return &models.Advice{
					Key:     "welcome",
					Title:   "Welcome to your farm",
					Message: "Start by checking the soil moisture panel on your first plot.",
					Area:    "plots",
				}
			},
		},
		{
			ID:      "explain_irrigation",
			OneShot: true,
			Condition: func(ctx models.AdvisorContext) bool {
				for _, plot := range ctx.Plots {
					if plot.SoilMoisturePct < 30 {
						return true
					}
				}
				return false
			},
			Action: func(models.AdvisorContext) *models.Advice {
				return &models.Advice{
					Key:     "explain_irrigation",
					Title:   "Dry soil detected",
					Message: "Satellite soil moisture readings below 30% mean your crops are thirsty. Open a dry plot and use the water action.",
					Area:    "irrigation",
				}
			},
		},
		{
			ID:      "explain_pasture",
			OneShot: true,
			Condition: func(ctx models.AdvisorContext) bool {
				return !ctx.VisitedAreas["pastures"] && len(ctx.Pastures) > 0
			},
			Action: func(models.AdvisorContext) *models.Advice {
				return &models.Advice{
					Key:     "explain_pasture",
					Title:   "Your pastures",
					Message: "Vegetation index (NDVI) shows how much grass your pastures hold. Rotate your herd before it drops below 0.3.",
					Area:    "pastures",
				}
			},
		},
		{
			ID: "encourage_tasks",
			Condition: func(ctx models.AdvisorContext) bool {
				return ctx.CompletedTasks == 0 && ctx.SessionMinutes > 5
			},
			Action: func(models.AdvisorContext) *models.Advice {
				return &models.Advice{
					Key:     "encourage_tasks",
					Title:   "Try a task",
					Message: "Accept a recommendation from the advisor panel to earn your first XP.",
					Area:    "tasks",
				}
			},
		},
	}
}
