package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/laurel/internal/rubric"
)

// PromptSource provides the effective instructions and output
// specifications for evaluation stages. rubric.System satisfies it.
type PromptSource interface {
	Instructions(ctx context.Context, stage rubric.Stage) (string, error)
	Spec(ctx context.Context, stage rubric.Stage) (string, error)
}

const noDisclosure = "[no AI-usage disclosure provided]"

// ComposeCriterionPrompt builds the system prompt for grading a single
// criterion: tunable instructions, the immutable output specification,
// the essay text, and the AI-usage disclosure. When the disclosure is
// empty, a placeholder notes its absence so the model does not treat
// the omission as suspect.
func ComposeCriterionPrompt(
	ctx context.Context,
	ps PromptSource,
	criterion rubric.Stage,
	essay, disclosure string,
) (string, error) {
	instructions, err := ps.Instructions(ctx, criterion)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", criterion, err)
	}

	spec, err := ps.Spec(ctx, criterion)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", criterion, err)
	}

	if strings.TrimSpace(disclosure) == "" {
		disclosure = noDisclosure
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nEssay:\n\n")
	sb.WriteString(essay)
	sb.WriteString("\n\nAI-usage disclosure:\n\n")
	sb.WriteString(disclosure)

	return sb.String(), nil
}

// ComposeSynthesisPrompt builds the system prompt for the synthesis
// stage from the full set of criterion results.
func ComposeSynthesisPrompt(
	ctx context.Context,
	ps PromptSource,
	essay string,
	results []CriterionResult,
) (string, error) {
	instructions, err := ps.Instructions(ctx, rubric.StageSynthesis)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", rubric.StageSynthesis, err)
	}

	spec, err := ps.Spec(ctx, rubric.StageSynthesis)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", rubric.StageSynthesis, err)
	}

	resultsJSON, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize criterion results: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\nPer-criterion evaluation results:\n\n")
	sb.WriteString(string(resultsJSON))
	sb.WriteString("\n\nEssay:\n\n")
	sb.WriteString(essay)

	return sb.String(), nil
}
