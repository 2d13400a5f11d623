package grading

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/laurel/internal/rubric"
	"github.com/JaimeStill/laurel/pkg/formatting"
)

type criterionResponse struct {
	Score     int        `json:"score"`
	Comment   string     `json:"comment"`
	Fragments []Fragment `json:"fragments"`
}

type synthesisResponse struct {
	Summary string `json:"summary"`
}

type grader struct {
	agent   gaconfig.AgentConfig
	prompts PromptSource
	logger  *slog.Logger
}

// NewGrader creates an agent-backed Grader. Each call creates its own
// agent so concurrent criterion grading never shares client state.
func NewGrader(cfg gaconfig.AgentConfig, prompts PromptSource, logger *slog.Logger) Grader {
	return &grader{
		agent:   cfg,
		prompts: prompts,
		logger:  logger.With("system", "grading"),
	}
}

func (g *grader) Grade(
	ctx context.Context,
	criterion rubric.Stage,
	essay, disclosure string,
) (*CriterionResult, error) {
	prompt, err := ComposeCriterionPrompt(ctx, g.prompts, criterion, essay, disclosure)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	a, err := agent.New(&g.agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrBackend, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat call for %s: %w", ErrBackend, criterion, err)
	}

	result, err := ParseCriterionResult(criterion, resp.Content())
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(
		ctx, "criterion graded",
		"criterion", criterion,
		"score", result.Score,
	)

	return result, nil
}

func (g *grader) Summarize(
	ctx context.Context,
	essay string,
	results []CriterionResult,
) (string, error) {
	prompt, err := ComposeSynthesisPrompt(ctx, g.prompts, essay, results)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackend, err)
	}

	a, err := agent.New(&g.agent)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrBackend, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: chat call for synthesis: %w", ErrBackend, err)
	}

	parsed, err := formatting.Parse[synthesisResponse](resp.Content())
	if err != nil {
		return "", fmt.Errorf("%w: parse response: %w", ErrSchema, err)
	}

	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", ErrSchema)
	}

	return summary, nil
}

// ParseCriterionResult parses and validates a raw model response for a
// criterion. It enforces the output contract: score in [1, 5], a
// non-empty comment, and recognized fragment impact values.
func ParseCriterionResult(criterion rubric.Stage, content string) (*CriterionResult, error) {
	parsed, err := formatting.Parse[criterionResponse](content)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response for %s: %w", ErrSchema, criterion, err)
	}

	if parsed.Score < 1 || parsed.Score > 5 {
		return nil, fmt.Errorf("%w: %s score %d outside [1, 5]", ErrSchema, criterion, parsed.Score)
	}

	if strings.TrimSpace(parsed.Comment) == "" {
		return nil, fmt.Errorf("%w: %s comment is empty", ErrSchema, criterion)
	}

	fragments := parsed.Fragments
	if fragments == nil {
		fragments = []Fragment{}
	}
	for _, f := range fragments {
		if !slices.Contains([]Impact{ImpactPositive, ImpactNegative}, f.Impact) {
			return nil, fmt.Errorf("%w: %s fragment impact %q unrecognized", ErrSchema, criterion, f.Impact)
		}
	}

	return &CriterionResult{
		Criterion: criterion,
		Score:     parsed.Score,
		Comment:   parsed.Comment,
		Fragments: fragments,
	}, nil
}
