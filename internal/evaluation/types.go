// Package evaluation implements the essay evaluation pipeline: parallel
// per-criterion grading, an all-or-nothing join, weighted overall
// scoring, and summary synthesis, orchestrated as a state graph.
package evaluation

import (
	"math"
	"time"

	"github.com/JaimeStill/laurel/internal/grading"
	"github.com/JaimeStill/laurel/internal/rubric"
)

// State graph keys.
const (
	KeyEssay      = "essay"
	KeyDisclosure = "disclosure"
	KeyResults    = "criterion_results"
	KeyResult     = "evaluation_result"
)

// Result is the complete outcome of an essay evaluation.
// Criteria follows the canonical rubric order.
type Result struct {
	Criteria     []grading.CriterionResult `json:"criteria"`
	OverallScore float64                   `json:"overall_score"`
	Summary      string                    `json:"summary"`
	CompletedAt  time.Time                 `json:"completed_at"`
}

// Overall computes the weighted overall score from criterion results,
// rounded to two decimal places.
func Overall(results []grading.CriterionResult) float64 {
	var sum float64
	for _, r := range results {
		sum += float64(r.Score) * rubric.Weight(r.Criterion)
	}
	return math.Round(sum*100) / 100
}
