package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/laurel/internal/grading"
)

// SynthesizeNode returns a state node that computes the weighted
// overall score and produces the qualitative summary comment from the
// full set of criterion results. It runs only after the grade node has
// joined, so it always sees a complete result set.
func SynthesizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		results, err := extractResults(s)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		essay, _, err := extractInputs(s)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w", err)
		}

		synthCtx := ctx
		if rt.SynthesisTimeout > 0 {
			var cancel context.CancelFunc
			synthCtx, cancel = context.WithTimeout(ctx, rt.SynthesisTimeout)
			defer cancel()
		}

		summary, err := rt.Grader.Summarize(synthCtx, essay, results)
		if err != nil {
			return s, fmt.Errorf("synthesize: %w: %w", ErrSynthesisFailed, err)
		}

		result := Result{
			Criteria:     results,
			OverallScore: Overall(results),
			Summary:      summary,
			CompletedAt:  time.Now(),
		}

		rt.Logger.InfoContext(
			ctx, "synthesize node complete",
			"overall_score", result.OverallScore,
		)

		s = s.Set(KeyResult, result)
		return s, nil
	})
}

func extractResults(s state.State) ([]grading.CriterionResult, error) {
	val, ok := s.Get(KeyResults)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrSynthesisFailed, KeyResults)
	}

	results, ok := val.([]grading.CriterionResult)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not []grading.CriterionResult", ErrSynthesisFailed, KeyResults)
	}

	return results, nil
}
