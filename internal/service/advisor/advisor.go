// Package advisor orchestrates one tick of the rule engine: it assembles the
// context, runs the generators in isolation, ranks the merged output,
// dispatches alert intents, advances time-based state and evaluates the
// coaching triggers.
package advisor

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/breeding"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/generate"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/rank"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/trigger"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/store"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/pkg/clients/anthropic"
)

// SensorSource supplies the external field conditions for a tick.
type SensorSource interface {
	Conditions(ctx context.Context, lat, lon float64) models.FieldConditions
}

// hintAutoDismiss is how long a shown hint stays up before it dismisses
// itself.
const hintAutoDismiss = 5 * time.Second

// Service is the advisor facade used by the HTTP layer and the scheduler.
type Service struct {
	store      *store.Store
	sensors    SensorSource
	dispatcher *trigger.Dispatcher
	coach      anthropic.Client
	generators []generate.Generator
	logger     *zap.Logger

	lat, lon float64
	now      func() time.Time

	// rngMu serializes draws from rng; rand.Rand is not safe for concurrent
	// use and gin serves the breeding handlers in parallel.
	rngMu sync.Mutex
	rng   *rand.Rand

	mu           sync.Mutex
	hintTimers   map[string]*time.Timer
	sessionStart time.Time
	visited      map[string]bool
	tasksDone    int

	// rolling counters for the daily snapshot
	recsGenerated  int
	criticalAlerts int
	lastField      models.FieldConditions
}

// NewService wires the advisor. The coach is optional; rng must be a seeded
// source so breeding projections are reproducible under test.
func NewService(st *store.Store, sensors SensorSource, dispatcher *trigger.Dispatcher, coach anthropic.Client, lat, lon float64, rng *rand.Rand, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dispatcher == nil {
		dispatcher = trigger.NewDispatcher(0, logger.Named("triggers"))
	}
	svc := &Service{
		store:      st,
		sensors:    sensors,
		dispatcher: dispatcher,
		coach:      coach,
		generators: generate.All(),
		logger:     logger,
		lat:        lat,
		lon:        lon,
		rng:        rng,
		now:        time.Now,
		hintTimers: make(map[string]*time.Timer),
		visited:    make(map[string]bool),
	}
	svc.sessionStart = svc.now()
	return svc
}

// BuildContext snapshots the store and sensors into one tick context.
func (s *Service) BuildContext(ctx context.Context) models.AdvisorContext {
	now := s.now()

	var field models.FieldConditions
	if s.sensors != nil {
		field = s.sensors.Conditions(ctx, s.lat, s.lon)
	}

	s.mu.Lock()
	s.lastField = field
	visited := make(map[string]bool, len(s.visited))
	for area := range s.visited {
		visited[area] = true
	}
	tasksDone := s.tasksDone
	sessionMinutes := now.Sub(s.sessionStart).Minutes()
	s.mu.Unlock()

	return models.AdvisorContext{
		Now:            now,
		Animals:        s.store.Animals(),
		Plots:          s.store.Plots(),
		Pastures:       s.store.Pastures(),
		Field:          field,
		History:        s.store.History(),
		VisitedAreas:   visited,
		CompletedTasks: tasksDone,
		SessionMinutes: sessionMinutes,
	}
}

// Recommend runs every generator against a fresh context, persists and ranks
// the merged output and dispatches the alert intents. A panicking generator
// is logged and skipped; it never takes the others down.
func (s *Service) Recommend(ctx context.Context) []models.Recommendation {
	return s.recommend(s.BuildContext(ctx))
}

func (s *Service) recommend(advisorCtx models.AdvisorContext) []models.Recommendation {
	merged := []models.Recommendation{}
	intents := []models.AlertIntent{}
	for i, gen := range s.generators {
		out := s.runGenerator(i, gen, advisorCtx)
		merged = append(merged, out.Recommendations...)
		intents = append(intents, out.Alerts...)
	}

	for _, rec := range merged {
		s.store.PutRecommendation(rec)
	}
	for _, intent := range intents {
		s.raiseAlert(intent, advisorCtx.Now)
	}

	s.mu.Lock()
	s.recsGenerated += len(merged)
	s.mu.Unlock()

	return rank.Rank(merged)
}

func (s *Service) runGenerator(idx int, gen generate.Generator, ctx models.AdvisorContext) (out generate.Output) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("generator panicked, skipping its output for this tick",
				zap.Int("generator", idx), zap.Any("panic", r))
			out = generate.Output{Recommendations: []models.Recommendation{}, Alerts: []models.AlertIntent{}}
		}
	}()
	return gen(ctx)
}

func (s *Service) raiseAlert(intent models.AlertIntent, now time.Time) {
	alert := models.Alert{
		ID:             uuid.NewString(),
		Type:           intent.Type,
		Severity:       intent.Severity,
		Title:          intent.Title,
		Message:        intent.Message,
		Recommendation: intent.Recommendation,
		CreatedAt:      now,
	}
	s.store.AppendAlert(alert)
	if intent.Severity == models.SeverityCritical {
		s.mu.Lock()
		s.criticalAlerts++
		s.mu.Unlock()
	}
	s.logger.Info("alert raised",
		zap.String("type", alert.Type),
		zap.String("severity", string(alert.Severity)),
		zap.String("title", alert.Title))
}

// Tick advances all time-based state by one step and evaluates the coaching
// triggers. It returns the fired advice, if any.
func (s *Service) Tick(ctx context.Context) *models.Advice {
	return s.tick(ctx, s.BuildContext(ctx))
}

// RunCycle executes one full advisor pass on a single context snapshot, so
// the sensor chain is hit once per cycle instead of once per phase.
func (s *Service) RunCycle(ctx context.Context) *models.Advice {
	advisorCtx := s.BuildContext(ctx)
	s.recommend(advisorCtx)
	return s.tick(ctx, advisorCtx)
}

func (s *Service) tick(ctx context.Context, advisorCtx models.AdvisorContext) *models.Advice {
	now := advisorCtx.Now

	// Gestation countdowns.
	for _, record := range s.store.BreedingRecords() {
		advanced := breeding.Advance(record, now)
		if advanced.Status != record.Status {
			s.store.PutBreeding(advanced)
			s.logger.Info("offspring born",
				zap.String("record", advanced.ID),
				zap.String("sire", advanced.SireID),
				zap.String("dam", advanced.DamID))
		}
	}

	// Task deadlines.
	for _, task := range s.store.Tasks() {
		if task.Status != models.TaskScheduled && task.Status != models.TaskActive {
			continue
		}
		if !task.DueAt.IsZero() && now.After(task.DueAt) {
			if err := s.store.SetTaskStatus(task.ID, models.TaskExpired); err == nil {
				s.store.SetRecommendationStatus(task.RecommendationID, models.RecommendationExpired)
				s.logger.Info("task expired", zap.String("task", task.ID))
			}
		}
	}

	advice := s.dispatcher.Check(advisorCtx)
	if advice != nil && s.coach != nil {
		if longer, err := s.coach.Elaborate(ctx, advice.Title, advice.Message); err == nil && longer != "" {
			advice.Message = longer
		} else if err != nil {
			s.logger.Debug("coach elaboration failed, keeping short hint", zap.Error(err))
		}
	}
	return advice
}

// ShowHint surfaces a hint and schedules its auto-dismiss. A second hint with
// the same key restarts the countdown.
func (s *Service) ShowHint(advice models.Advice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.hintTimers[advice.Key]; ok {
		timer.Stop()
	}
	key := advice.Key
	s.hintTimers[key] = time.AfterFunc(hintAutoDismiss, func() {
		s.mu.Lock()
		delete(s.hintTimers, key)
		s.mu.Unlock()
		s.logger.Debug("hint auto-dismissed", zap.String("hint", key))
	})
}

// DismissHint cancels the pending auto-dismiss so a stale timer cannot act on
// an already-dismissed hint.
func (s *Service) DismissHint(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.hintTimers[key]; ok {
		timer.Stop()
		delete(s.hintTimers, key)
	}
}

// MarkVisited records that the player opened an area, feeding the one-shot
// coaching triggers.
func (s *Service) MarkVisited(area string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visited[area] = true
}

// ResetSession re-arms the one-shot triggers and restarts the session clock.
func (s *Service) ResetSession() {
	s.dispatcher.Reset()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionStart = s.now()
	s.visited = make(map[string]bool)
	s.tasksDone = 0
}

// AcceptRecommendation turns a pending recommendation into a scheduled task.
func (s *Service) AcceptRecommendation(id string) (models.FarmTask, error) {
	rec, ok := s.store.Recommendation(id)
	if !ok {
		return models.FarmTask{}, store.ErrNotFound
	}
	if err := s.store.SetRecommendationStatus(id, models.RecommendationAccepted); err != nil {
		return models.FarmTask{}, err
	}

	now := s.now()
	task := models.FarmTask{
		ID:               uuid.NewString(),
		RecommendationID: rec.ID,
		Title:            rec.Title,
		Actions:          rec.Actions,
		Reward:           rec.Reward,
		Status:           models.TaskScheduled,
		CreatedAt:        now,
	}
	if rec.DeadlineHours > 0 {
		task.DueAt = now.Add(time.Duration(rec.DeadlineHours * float64(time.Hour)))
	}
	s.store.PutTask(task)
	return task, nil
}

// CompleteTask finishes a task and credits the completion counter the
// coaching triggers read.
func (s *Service) CompleteTask(id string) error {
	if err := s.store.SetTaskStatus(id, models.TaskCompleted); err != nil {
		return err
	}
	if task, ok := s.store.Task(id); ok {
		s.store.SetRecommendationStatus(task.RecommendationID, models.RecommendationCompleted)
	}
	s.mu.Lock()
	s.tasksDone++
	s.mu.Unlock()
	return nil
}

// BestMatch finds the strongest breeding partner for an animal.
func (s *Service) BestMatch(animalID string) (breeding.Match, error) {
	animal, ok := s.store.Animal(animalID)
	if !ok {
		return breeding.Match{}, store.ErrNotFound
	}
	animals := s.store.Animals()
	pedigree := make(map[string]models.Animal, len(animals))
	for _, a := range animals {
		pedigree[a.ID] = a
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return breeding.FindBestMatch(animal, animals, pedigree, s.rng)
}

// ScheduleBreeding pairs two animals and stores the scheduled record.
func (s *Service) ScheduleBreeding(sireID, damID string) (models.BreedingRecord, error) {
	sire, ok := s.store.Animal(sireID)
	if !ok {
		return models.BreedingRecord{}, store.ErrNotFound
	}
	dam, ok := s.store.Animal(damID)
	if !ok {
		return models.BreedingRecord{}, store.ErrNotFound
	}
	s.rngMu.Lock()
	record := breeding.Schedule(sire, dam, s.now(), s.rng)
	s.rngMu.Unlock()
	s.store.PutBreeding(record)
	return record, nil
}

// CompleteBreeding marks a scheduled pairing done and starts gestation.
func (s *Service) CompleteBreeding(id string) (models.BreedingRecord, error) {
	record, ok := s.store.Breeding(id)
	if !ok {
		return models.BreedingRecord{}, store.ErrNotFound
	}
	completed, err := breeding.Complete(record, s.now())
	if err != nil {
		return models.BreedingRecord{}, err
	}
	s.store.PutBreeding(completed)
	return completed, nil
}

// Snapshot drains the rolling counters into a daily snapshot record.
func (s *Service) Snapshot() models.DailySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.DailySnapshot{
		Date:             s.now().Truncate(24 * time.Hour),
		Recommendations:  s.recsGenerated,
		CriticalAlerts:   s.criticalAlerts,
		MeanSoilMoisture: s.lastField.SoilMoisturePct,
		RainfallMM7d:     s.lastField.RainfallMM7d,
		CreatedAt:        s.now(),
	}
	s.recsGenerated = 0
	s.criticalAlerts = 0
	return snap
}
