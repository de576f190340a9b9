package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

func newTestStore(now time.Time) *Store {
	s := New()
	s.now = func() time.Time { return now }
	return s
}

func feedObs(entity string, at time.Time, value float64) models.Observation {
	return models.Observation{EntityID: entity, Metric: models.MetricFeedIntake, Value: value, RecordedAt: at}
}

func TestAppendObservation_KeepsSeriesTimeOrdered(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	s.AppendObservation(feedObs("cow-1", now.Add(-1*time.Hour), 12))
	s.AppendObservation(feedObs("cow-1", now.Add(-3*time.Hour), 10))
	s.AppendObservation(feedObs("cow-1", now.Add(-2*time.Hour), 11))

	series := s.Observations("cow-1")
	require.Len(t, series, 3)
	assert.Equal(t, []float64{10, 11, 12}, []float64{series[0].Value, series[1].Value, series[2].Value})
}

func TestAppendObservation_PrunesOutsideRetentionWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	s.AppendObservation(feedObs("cow-1", now.Add(-91*24*time.Hour), 5))
	s.AppendObservation(feedObs("cow-1", now.Add(-10*24*time.Hour), 8))

	series := s.Observations("cow-1")
	require.Len(t, series, 1)
	assert.Equal(t, 8.0, series[0].Value)
}

func TestAppendObservation_CapsPerMetricDroppingOldest(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)

	for i := 0; i < maxSeriesPerMetric+5; i++ {
		s.AppendObservation(feedObs("cow-1", now.Add(time.Duration(i-40)*time.Hour), float64(i)))
	}
	// A second metric on the same entity is capped independently.
	s.AppendObservation(models.Observation{
		EntityID: "cow-1", Metric: models.MetricTemperature, Value: 38.5,
		RecordedAt: now.Add(-50 * time.Hour),
	})

	var feed, temp []float64
	for _, o := range s.Observations("cow-1") {
		switch o.Metric {
		case models.MetricFeedIntake:
			feed = append(feed, o.Value)
		case models.MetricTemperature:
			temp = append(temp, o.Value)
		}
	}
	require.Len(t, feed, maxSeriesPerMetric)
	assert.Equal(t, 5.0, feed[0], "oldest surplus entries are dropped first")
	assert.Len(t, temp, 1)
}

func TestObservations_ReturnsCopy(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)
	s.AppendObservation(feedObs("cow-1", now.Add(-time.Hour), 12))

	got := s.Observations("cow-1")
	got[0].Value = 999

	assert.Equal(t, 12.0, s.Observations("cow-1")[0].Value)
}

func TestAlerts_AppendOnlyLifecycle(t *testing.T) {
	s := New()
	s.AppendAlert(models.Alert{ID: "a1", Severity: models.SeverityHigh})
	s.AppendAlert(models.Alert{ID: "a2", Severity: models.SeverityCritical})

	require.NoError(t, s.AcknowledgeAlert("a1"))
	require.NoError(t, s.ResolveAlert("a1"))

	all := s.Alerts(false)
	require.Len(t, all, 2)
	assert.Equal(t, "a1", all[0].ID, "creation order is preserved")
	assert.True(t, all[0].Acknowledged)
	assert.True(t, all[0].Resolved)

	unresolved := s.Alerts(true)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "a2", unresolved[0].ID)

	assert.ErrorIs(t, s.AcknowledgeAlert("missing"), ErrNotFound)
	assert.ErrorIs(t, s.ResolveAlert("missing"), ErrNotFound)
}

func TestSetTaskStatus_TerminalStatesAreSticky(t *testing.T) {
	s := New()
	s.PutTask(models.FarmTask{ID: "t1", Status: models.TaskScheduled})

	require.NoError(t, s.SetTaskStatus("t1", models.TaskCompleted))
	require.NoError(t, s.SetTaskStatus("t1", models.TaskExpired))

	task, ok := s.Task("t1")
	require.True(t, ok)
	assert.Equal(t, models.TaskCompleted, task.Status)

	assert.ErrorIs(t, s.SetTaskStatus("missing", models.TaskCompleted), ErrNotFound)
}

func TestSetRecommendationStatus_TerminalStatesAreSticky(t *testing.T) {
	s := New()
	s.PutRecommendation(models.Recommendation{ID: "r1", Status: models.RecommendationPending})

	require.NoError(t, s.SetRecommendationStatus("r1", models.RecommendationDismissed))
	require.NoError(t, s.SetRecommendationStatus("r1", models.RecommendationAccepted))

	rec, ok := s.Recommendation("r1")
	require.True(t, ok)
	assert.Equal(t, models.RecommendationDismissed, rec.Status)
}

func TestListings_SortedStably(t *testing.T) {
	s := New()
	s.PutAnimal(models.Animal{ID: "b"})
	s.PutAnimal(models.Animal{ID: "a"})
	s.PutPlot(models.Plot{ID: "p2"})
	s.PutPlot(models.Plot{ID: "p1"})

	animals := s.Animals()
	require.Len(t, animals, 2)
	assert.Equal(t, "a", animals[0].ID)

	plots := s.Plots()
	require.Len(t, plots, 2)
	assert.Equal(t, "p1", plots[0].ID)
}

func TestHistory_SnapshotsAllSeries(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(now)
	s.AppendObservation(feedObs("cow-1", now.Add(-time.Hour), 12))
	s.AppendObservation(feedObs("cow-2", now.Add(-time.Hour), 9))

	hist := s.History()
	require.Len(t, hist, 2)
	hist["cow-1"][0].Value = 0

	assert.Equal(t, 12.0, s.Observations("cow-1")[0].Value)
}
