package evaluation

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the evaluation pipeline for a single essay. It builds
// the state graph (grade → synthesize), executes it, and extracts the
// Result from the final state. Any criterion or synthesis failure fails
// the whole evaluation; partial results are never returned.
func Execute(ctx context.Context, rt *Runtime, essay, disclosure string) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyEssay, essay)
	initialState = initialState.Set(KeyDisclosure, disclosure)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("laurel-evaluate")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("grade", GradeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("synthesize", SynthesizeNode(rt)); err != nil {
		return nil, err
	}

	// grade → synthesize (unconditional)
	if err := graph.AddEdge("grade", "synthesize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("grade"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("synthesize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := val.(Result)
	if !ok {
		return nil, fmt.Errorf("%s is not Result", KeyResult)
	}

	return &result, nil
}
