// Package grading implements per-criterion essay grading against the
// rubric. It defines the grader contract, the agent-backed
// implementation, and the result types produced for each criterion.
package grading

import (
	"context"

	"github.com/JaimeStill/laurel/internal/rubric"
)

// Impact classifies how a quoted fragment affected a criterion score.
type Impact string

// Valid fragment impact values.
const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
)

// Fragment is a verbatim quote from the essay cited as evidence for a score.
type Fragment struct {
	Text          string `json:"text"`
	Impact        Impact `json:"impact"`
	Justification string `json:"justification"`
}

// CriterionResult holds the grading outcome for a single rubric criterion.
type CriterionResult struct {
	Criterion rubric.Stage `json:"criterion_key"`
	Score     int          `json:"score"`
	Comment   string       `json:"comment"`
	Fragments []Fragment   `json:"fragments"`
}

// Grader grades an essay against individual rubric criteria and
// synthesizes per-criterion results into a summary comment.
type Grader interface {
	// Grade evaluates the essay against a single criterion. The
	// disclosure describes the author's AI tool usage and may be empty.
	Grade(ctx context.Context, criterion rubric.Stage, essay, disclosure string) (*CriterionResult, error)

	// Summarize produces the overall qualitative summary from the full
	// set of criterion results.
	Summarize(ctx context.Context, essay string, results []CriterionResult) (string, error)
}
