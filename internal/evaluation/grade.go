package evaluation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/laurel/internal/grading"
	"github.com/JaimeStill/laurel/internal/rubric"
)

// GradeNode returns a state node that grades every rubric criterion in
// parallel using errgroup concurrency. Each goroutine writes to a
// distinct slot of the results slice, so the join is a plain Wait: the
// node succeeds only when every criterion graded successfully and fails
// as a whole when any grade fails.
func GradeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		essay, disclosure, err := extractInputs(s)
		if err != nil {
			return s, fmt.Errorf("grade: %w", err)
		}

		results, err := gradeCriteria(ctx, rt, essay, disclosure)
		if err != nil {
			return s, fmt.Errorf("grade: %w", err)
		}

		rt.Logger.InfoContext(
			ctx, "grade node complete",
			"criteria", len(results),
		)

		s = s.Set(KeyResults, results)
		return s, nil
	})
}

func extractInputs(s state.State) (string, string, error) {
	essayVal, ok := s.Get(KeyEssay)
	if !ok {
		return "", "", fmt.Errorf("%w: missing %s in state", ErrGradeFailed, KeyEssay)
	}

	essay, ok := essayVal.(string)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not string", ErrGradeFailed, KeyEssay)
	}

	var disclosure string
	if discVal, ok := s.Get(KeyDisclosure); ok {
		if disclosure, ok = discVal.(string); !ok {
			return "", "", fmt.Errorf("%w: %s is not string", ErrGradeFailed, KeyDisclosure)
		}
	}

	return essay, disclosure, nil
}

func gradeCriteria(ctx context.Context, rt *Runtime, essay, disclosure string) ([]grading.CriterionResult, error) {
	criteria := rubric.Criteria()
	results := make([]grading.CriterionResult, len(criteria))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(criteria))

	for i, criterion := range criteria {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			gradeCtx := gctx
			if rt.GradingTimeout > 0 {
				var cancel context.CancelFunc
				gradeCtx, cancel = context.WithTimeout(gctx, rt.GradingTimeout)
				defer cancel()
			}

			result, err := rt.Grader.Grade(gradeCtx, criterion, essay, disclosure)
			if err != nil {
				return fmt.Errorf("criterion %s: %w", criterion, err)
			}

			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGradeFailed, err)
	}

	return results, nil
}
