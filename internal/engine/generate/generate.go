// Package generate contains the recommendation generators. Each generator is
// independent and side-effect-free: it reads the advisor context and returns
// recommendations plus alert intents for the caller to dispatch. A generator
// that finds nothing returns empty (non-nil) slices, and it never emits a
// recommendation without at least one action directive.
package generate

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/breeding"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/evaluate"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/score"
	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/engine/thresholds"
)

// Output is what one generator produces for a single tick.
type Output struct {
	Recommendations []models.Recommendation
	Alerts          []models.AlertIntent
}

// Generator evaluates one category of advice against the tick context.
type Generator func(ctx models.AdvisorContext) Output

// All returns the generator set in its canonical order.
func All() []Generator {
	return []Generator{CriticalIssues, Optimizations, GrowthOpportunities, Preventive}
}

func emptyOutput() Output {
	return Output{
		Recommendations: []models.Recommendation{},
		Alerts:          []models.AlertIntent{},
	}
}

// CriticalIssues emits drought irrigation advice and livestock health alerts.
func CriticalIssues(ctx models.AdvisorContext) Output {
	out := emptyOutput()

	var dry []models.Plot
	for _, plot := range ctx.Plots {
		if plot.SoilMoisturePct < thresholds.SoilMoistureCriticalPct {
			dry = append(dry, plot)
		}
	}

	if len(dry) > 0 {
		priority := models.PriorityHigh
		reasoning := fmt.Sprintf("%d plot(s) below the %.0f%% soil moisture line.", len(dry), thresholds.SoilMoistureCriticalPct)
		if ctx.Field.RainfallMM7d < thresholds.DrySpellRainfallMM7d {
			priority = models.PriorityCritical
			reasoning += fmt.Sprintf(" Only %.1f mm of rain fell in the last 7 days, so no natural recovery is coming.", ctx.Field.RainfallMM7d)
		}

		actions := make([]models.ActionDirective, 0, len(dry))
		locations := make([]string, 0, len(dry))
		for _, plot := range dry {
			actions = append(actions, models.ActionDirective{
				Action:   "water",
				TargetID: plot.ID,
				Note:     fmt.Sprintf("soil moisture %.1f%%", plot.SoilMoisturePct),
			})
			locations = append(locations, plot.ID)
		}

		out.Recommendations = append(out.Recommendations, models.Recommendation{
			ID:            uuid.NewString(),
			Category:      models.CategoryCriticalIssue,
			Type:          "irrigation",
			Priority:      priority,
			Title:         "Irrigate dry plots now",
			Description:   fmt.Sprintf("Water the %d plot(s) that dropped below the dryness threshold.", len(dry)),
			Reasoning:     reasoning,
			Actions:       actions,
			Locations:     locations,
			Reward:        models.Reward{XP: 40, Coins: 20},
			DeadlineHours: 12,
			Impact:        "Prevents crop loss from drought stress.",
			Status:        models.RecommendationPending,
			CreatedAt:     ctx.Now,
		})

		if priority == models.PriorityCritical {
			out.Alerts = append(out.Alerts, models.AlertIntent{
				Type:           "drought",
				Severity:       models.SeverityCritical,
				Title:          "Drought conditions",
				Message:        reasoning,
				Recommendation: "Irrigate all flagged plots within 12 hours.",
			})
		}
	}

	for _, animal := range ctx.Animals {
		for _, anomaly := range evaluate.Animal(animal, ctx.History[animal.ID]) {
			if anomaly.Severity != models.SeverityHigh && anomaly.Severity != models.SeverityCritical {
				continue
			}
			out.Recommendations = append(out.Recommendations, models.Recommendation{
				ID:          uuid.NewString(),
				Category:    models.CategoryCriticalIssue,
				Type:        "animal_health",
				Priority:    models.PriorityHigh,
				Title:       fmt.Sprintf("Check on %s", animal.Name),
				Description: anomaly.Message,
				Reasoning:   anomaly.Recommendation,
				Actions: []models.ActionDirective{
					{Action: "inspect_animal", TargetID: animal.ID, Note: anomaly.Type},
				},
				Reward:        models.Reward{XP: 30, Coins: 10},
				DeadlineHours: 6,
				Impact:        "Catches illness before it spreads through the herd.",
				Status:        models.RecommendationPending,
				CreatedAt:     ctx.Now,
			})
			out.Alerts = append(out.Alerts, models.AlertIntent{
				Type:           anomaly.Type,
				Severity:       anomaly.Severity,
				Title:          fmt.Sprintf("Health anomaly: %s", animal.Name),
				Message:        anomaly.Message,
				Recommendation: anomaly.Recommendation,
			})
		}
	}

	return out
}

// Optimizations advises fertilizing stressed crops and rotating overgrazed
// pastures.
func Optimizations(ctx models.AdvisorContext) Output {
	out := emptyOutput()

	for _, plot := range ctx.Plots {
		for _, anomaly := range evaluate.Plot(plot, ctx.Field) {
			if anomaly.Type != "vegetation_stressed" {
				continue
			}
			out.Recommendations = append(out.Recommendations, models.Recommendation{
				ID:          uuid.NewString(),
				Category:    models.CategoryOptimization,
				Type:        "fertilize",
				Priority:    models.PriorityMedium,
				Title:       fmt.Sprintf("Fertilize plot %s", plot.ID),
				Description: anomaly.Message,
				Reasoning:   anomaly.Recommendation,
				Actions: []models.ActionDirective{
					{Action: "fertilize", TargetID: plot.ID, Amount: plot.AreaHa * 50, Note: "kg of organic fertilizer"},
				},
				Locations:     []string{plot.ID},
				Reward:        models.Reward{XP: 20, Coins: 15},
				DeadlineHours: 48,
				Impact:        "Raises vegetation index back toward healthy levels.",
				Status:        models.RecommendationPending,
				CreatedAt:     ctx.Now,
			})
		}
	}

	for _, pasture := range ctx.Pastures {
		for _, anomaly := range evaluate.Pasture(pasture) {
			priority := models.PriorityMedium
			if anomaly.Severity == models.SeverityHigh {
				priority = models.PriorityHigh
			}
			out.Recommendations = append(out.Recommendations, models.Recommendation{
				ID:          uuid.NewString(),
				Category:    models.CategoryOptimization,
				Type:        "rotate_pasture",
				Priority:    priority,
				Title:       fmt.Sprintf("Rotate livestock off %s", pasture.ID),
				Description: anomaly.Message,
				Reasoning:   anomaly.Recommendation,
				Actions: []models.ActionDirective{
					{Action: "rotate", TargetID: pasture.ID, Note: "move herd to a recovered pasture"},
				},
				Locations:     []string{pasture.ID},
				Reward:        models.Reward{XP: 25, Coins: 10},
				DeadlineHours: 72,
				Impact:        "Lets the sward recover before permanent damage.",
				Status:        models.RecommendationPending,
				CreatedAt:     ctx.Now,
			})
		}
	}

	return out
}

// GrowthOpportunities finds idle plots worth planting and strong breeding
// pairs. Matching runs without a random source so the suggestion is stable
// across ticks.
func GrowthOpportunities(ctx models.AdvisorContext) Output {
	out := emptyOutput()

	for _, plot := range ctx.Plots {
		if plot.Planted {
			continue
		}
		if plot.SoilMoisturePct < thresholds.SoilMoistureLowPct || plot.SoilMoisturePct > thresholds.SoilMoistureWaterlogged {
			continue
		}
		out.Recommendations = append(out.Recommendations, models.Recommendation{
			ID:          uuid.NewString(),
			Category:    models.CategoryGrowthOpportunity,
			Type:        "plant",
			Priority:    models.PriorityLow,
			Title:       fmt.Sprintf("Plant plot %s", plot.ID),
			Description: fmt.Sprintf("Plot %s is idle with %.1f%% soil moisture, good conditions for sowing.", plot.ID, plot.SoilMoisturePct),
			Reasoning:   "Idle cropland earns nothing; conditions are favorable.",
			Actions: []models.ActionDirective{
				{Action: "plant", TargetID: plot.ID},
			},
			Locations: []string{plot.ID},
			Reward:    models.Reward{XP: 15, Coins: 25},
			Impact:    "Puts idle land into production.",
			Status:    models.RecommendationPending,
			CreatedAt: ctx.Now,
		})
	}

	pedigree := make(map[string]models.Animal, len(ctx.Animals))
	for _, animal := range ctx.Animals {
		pedigree[animal.ID] = animal
	}
	for _, animal := range ctx.Animals {
		if animal.Sex != "female" || score.Genetic(animal) < 70 {
			continue
		}
		match, err := breeding.FindBestMatch(animal, ctx.Animals, pedigree, nil)
		if err != nil || match.Compatibility < 70 {
			continue
		}
		out.Recommendations = append(out.Recommendations, models.Recommendation{
			ID:          uuid.NewString(),
			Category:    models.CategoryGrowthOpportunity,
			Type:        "breeding",
			Priority:    models.PriorityMedium,
			Title:       fmt.Sprintf("Breed %s with %s", animal.Name, match.Partner.Name),
			Description: fmt.Sprintf("Pair compatibility %.0f with strong projected offspring traits.", match.Compatibility),
			Reasoning:   "Both parents score highly and share no recent ancestry.",
			Actions: []models.ActionDirective{
				{Action: "schedule_breeding", TargetID: animal.ID, Note: "partner " + match.Partner.ID},
			},
			Reward:    models.Reward{XP: 50, Coins: 40},
			Impact:    "Improves herd genetics over generations.",
			Status:    models.RecommendationPending,
			CreatedAt: ctx.Now,
		})
		break // one breeding suggestion per tick is enough
	}

	return out
}

// Preventive warns ahead of heat stress and overdue vaccinations.
func Preventive(ctx models.AdvisorContext) Output {
	out := emptyOutput()

	if ctx.Field.TempC >= thresholds.HeatStressTempC && len(ctx.Animals) > 0 {
		actions := []models.ActionDirective{
			{Action: "provide_shade", TargetID: "farm"},
			{Action: "refill_water", TargetID: "farm"},
		}
		out.Recommendations = append(out.Recommendations, models.Recommendation{
			ID:            uuid.NewString(),
			Category:      models.CategoryPreventive,
			Type:          "heat_stress",
			Priority:      models.PriorityMedium,
			Title:         "Prepare livestock for heat",
			Description:   fmt.Sprintf("Ambient temperature %.1f°C exceeds the %.0f°C heat stress threshold.", ctx.Field.TempC, thresholds.HeatStressTempC),
			Reasoning:     "Heat stress reduces feed intake and milk yield within hours.",
			Actions:       actions,
			Reward:        models.Reward{XP: 20, Coins: 10},
			DeadlineHours: 24,
			Impact:        "Avoids heat-related production loss.",
			Status:        models.RecommendationPending,
			CreatedAt:     ctx.Now,
		})
	}

	for _, animal := range ctx.Animals {
		if animal.HealthStatus != "vaccination_due" {
			continue
		}
		out.Recommendations = append(out.Recommendations, models.Recommendation{
			ID:          uuid.NewString(),
			Category:    models.CategoryPreventive,
			Type:        "vaccination",
			Priority:    models.PriorityMedium,
			Title:       fmt.Sprintf("Vaccinate %s", animal.Name),
			Description: fmt.Sprintf("%s is due for its scheduled vaccination.", animal.Name),
			Reasoning:   "Overdue vaccinations raise disease risk for the whole herd.",
			Actions: []models.ActionDirective{
				{Action: "vaccinate", TargetID: animal.ID},
			},
			Reward:        models.Reward{XP: 15, Coins: 5},
			DeadlineHours: 96,
			Impact:        "Keeps herd immunity up to date.",
			Status:        models.RecommendationPending,
			CreatedAt:     ctx.Now,
		})
	}

	return out
}
