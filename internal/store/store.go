// Package store is the in-memory state store: one keyed map per entity kind
// behind typed accessors, guarded by a single RWMutex. All mutation happens
// synchronously inside a call; no operation spans more than one entity kind
// atomically.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

// Observation retention: entries older than the window, or beyond the
// per-series cap, are pruned on append.
const (
	retentionWindow    = 90 * 24 * time.Hour
	maxSeriesPerMetric = 30
)

// ErrNotFound is returned by lookups and status mutations for unknown ids.
var ErrNotFound = errors.New("not found")

// Store holds all mutable game state for one farm.
type Store struct {
	mu sync.RWMutex

	animals  map[string]models.Animal
	plots    map[string]models.Plot
	pastures map[string]models.Pasture
	tasks    map[string]models.FarmTask
	alerts   map[string]models.Alert
	breeding map[string]models.BreedingRecord
	recs     map[string]models.Recommendation

	// observations are keyed by entity id, newest last.
	observations map[string][]models.Observation

	alertOrder []string
	now        func() time.Time
}

// New builds an empty store.
func New() *Store {
	return &Store{
		animals:      make(map[string]models.Animal),
		plots:        make(map[string]models.Plot),
		pastures:     make(map[string]models.Pasture),
		tasks:        make(map[string]models.FarmTask),
		alerts:       make(map[string]models.Alert),
		breeding:     make(map[string]models.BreedingRecord),
		recs:         make(map[string]models.Recommendation),
		observations: make(map[string][]models.Observation),
		now:          time.Now,
	}
}

// --- animals ---

func (s *Store) PutAnimal(a models.Animal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animals[a.ID] = a
}

func (s *Store) Animal(id string) (models.Animal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.animals[id]
	return a, ok
}

func (s *Store) Animals() []models.Animal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Animal, 0, len(s.animals))
	for _, a := range s.animals {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- plots ---

func (s *Store) PutPlot(p models.Plot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plots[p.ID] = p
}

func (s *Store) Plot(id string) (models.Plot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plots[id]
	return p, ok
}

func (s *Store) Plots() []models.Plot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Plot, 0, len(s.plots))
	for _, p := range s.plots {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- pastures ---

func (s *Store) PutPasture(p models.Pasture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pastures[p.ID] = p
}

func (s *Store) Pastures() []models.Pasture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Pasture, 0, len(s.pastures))
	for _, p := range s.pastures {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- observations ---

// AppendObservation adds one measurement to an entity's history and prunes
// the series: entries outside the retention window are dropped and each
// metric keeps at most maxSeriesPerMetric entries. The series stays sorted
// by timestamp.
func (s *Store) AppendObservation(obs models.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	series := append(s.observations[obs.EntityID], obs)
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].RecordedAt.Before(series[j].RecordedAt)
	})

	cutoff := s.now().Add(-retentionWindow)
	kept := series[:0]
	counts := make(map[models.Metric]int)
	for _, o := range series {
		if o.RecordedAt.Before(cutoff) {
			continue
		}
		counts[o.Metric]++
		kept = append(kept, o)
	}

	// Enforce the per-metric cap by dropping the oldest surplus entries.
	for metric, count := range counts {
		for count > maxSeriesPerMetric {
			for i, o := range kept {
				if o.Metric == metric {
					kept = append(kept[:i], kept[i+1:]...)
					break
				}
			}
			count--
		}
	}

	s.observations[obs.EntityID] = kept
}

// Observations returns a copy of an entity's history, oldest first.
func (s *Store) Observations(entityID string) []models.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	series := s.observations[entityID]
	out := make([]models.Observation, len(series))
	copy(out, series)
	return out
}

// History snapshots every entity's observation series for a tick context.
func (s *Store) History() map[string][]models.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]models.Observation, len(s.observations))
	for id, series := range s.observations {
		cp := make([]models.Observation, len(series))
		copy(cp, series)
		out[id] = cp
	}
	return out
}

// --- tasks ---

func (s *Store) PutTask(t models.FarmTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t
}

func (s *Store) Task(id string) (models.FarmTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	return t, ok
}

func (s *Store) Tasks() []models.FarmTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FarmTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// SetTaskStatus transitions a task. Terminal states are left untouched.
func (s *Store) SetTaskStatus(id string, status models.TaskStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	switch t.Status {
	case models.TaskCompleted, models.TaskDismissed, models.TaskExpired:
		return nil
	}
	t.Status = status
	s.tasks[id] = t
	return nil
}

// --- alerts ---

// AppendAlert records a new alert. Alerts form an append-only log: they are
// never deleted, only acknowledged or resolved.
func (s *Store) AppendAlert(a models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.alerts[a.ID]; !exists {
		s.alertOrder = append(s.alertOrder, a.ID)
	}
	s.alerts[a.ID] = a
}

// Alerts lists alerts in creation order. When unresolvedOnly is set, resolved
// entries are filtered out.
func (s *Store) Alerts(unresolvedOnly bool) []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Alert, 0, len(s.alertOrder))
	for _, id := range s.alertOrder {
		a := s.alerts[id]
		if unresolvedOnly && a.Resolved {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Store) AcknowledgeAlert(id string) error {
	return s.mutateAlert(id, func(a *models.Alert) { a.Acknowledged = true })
}

func (s *Store) ResolveAlert(id string) error {
	return s.mutateAlert(id, func(a *models.Alert) { a.Resolved = true })
}

func (s *Store) mutateAlert(id string, fn func(*models.Alert)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[id]
	if !ok {
		return ErrNotFound
	}
	fn(&a)
	s.alerts[id] = a
	return nil
}

// --- breeding ---

func (s *Store) PutBreeding(r models.BreedingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breeding[r.ID] = r
}

func (s *Store) Breeding(id string) (models.BreedingRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.breeding[id]
	return r, ok
}

func (s *Store) BreedingRecords() []models.BreedingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BreedingRecord, 0, len(s.breeding))
	for _, r := range s.breeding {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out
}

// --- recommendations ---

func (s *Store) PutRecommendation(r models.Recommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[r.ID] = r
}

func (s *Store) Recommendation(id string) (models.Recommendation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recs[id]
	return r, ok
}

// SetRecommendationStatus transitions a recommendation; terminal states
// (completed, dismissed, expired) are left untouched.
func (s *Store) SetRecommendationStatus(id string, status models.RecommendationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recs[id]
	if !ok {
		return ErrNotFound
	}
	switch r.Status {
	case models.RecommendationCompleted, models.RecommendationDismissed, models.RecommendationExpired:
		return nil
	}
	r.Status = status
	s.recs[id] = r
	return nil
}
