// Package rank centralizes the recommendation ordering formula so every call
// site applies the same tie-break rule.
package rank

import (
	"sort"

	"github.com/Arnobrizwan/ecosphere-ai-farming-simulator-sub004/internal/domain/models"
)

// Score computes the comparable value of one recommendation. The priority
// tier dominates; urgency (inverse deadline) and reward only break ties
// within a tier, and each required action costs a mild effort penalty.
func Score(rec models.Recommendation) float64 {
	score := models.PriorityWeight[rec.Priority]
	if rec.DeadlineHours > 0 {
		score += (1 / rec.DeadlineHours) * 100
	}
	score += float64(rec.Reward.XP + rec.Reward.Coins)
	score -= float64(len(rec.Actions)) * 5
	return score
}

// Rank sorts recommendations by descending Score. The sort is stable:
// recommendations with equal scores keep their insertion order.
func Rank(recs []models.Recommendation) []models.Recommendation {
	ranked := make([]models.Recommendation, len(recs))
	copy(ranked, recs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})
	return ranked
}
