// Package rubric implements the grading rubric domain for Laurel.
// It defines the evaluation criteria and their weights, the default
// prompt instructions and output specifications for each evaluation
// stage, and named instruction overrides managed through the database.
package rubric

import (
	"encoding/json"
	"math"
	"slices"
)

// Stage identifies an evaluation stage that prompt content targets.
// The six criterion stages are graded independently; the synthesis
// stage produces the overall summary comment from their results.
type Stage string

// Valid evaluation stages.
const (
	StageTechnicalQuality    Stage = "technical_quality"
	StageCreativity          Stage = "creativity"
	StageThematicAlignment   Stage = "thematic_alignment"
	StageCollectiveWellbeing Stage = "collective_wellbeing"
	StageResponsibleAI       Stage = "responsible_ai_use"
	StageImpactPotential     Stage = "impact_potential"
	StageSynthesis           Stage = "synthesis"
)

var stages = []Stage{
	StageTechnicalQuality,
	StageCreativity,
	StageThematicAlignment,
	StageCollectiveWellbeing,
	StageResponsibleAI,
	StageImpactPotential,
	StageSynthesis,
}

var criteria = []Stage{
	StageTechnicalQuality,
	StageCreativity,
	StageThematicAlignment,
	StageCollectiveWellbeing,
	StageResponsibleAI,
	StageImpactPotential,
}

var weights = map[Stage]float64{
	StageTechnicalQuality:    0.20,
	StageCreativity:          0.20,
	StageThematicAlignment:   0.15,
	StageCollectiveWellbeing: 0.20,
	StageResponsibleAI:       0.15,
	StageImpactPotential:     0.10,
}

// Criterion weights are fixed constants; the overall score contract
// depends on them summing to exactly 1.0.
func init() {
	var sum float64
	for _, c := range criteria {
		sum += weights[c]
	}
	if math.Abs(sum-1.0) > 1e-9 {
		panic("rubric: criterion weights must sum to 1.0")
	}
}

// Stages returns the list of valid evaluation stages, criteria first.
func Stages() []Stage {
	return stages
}

// Criteria returns the graded criteria in their canonical order.
// The synthesis stage is excluded; it is not a scored criterion.
func Criteria() []Stage {
	return criteria
}

// Weight returns the contribution of a criterion to the overall score.
// Returns 0 for the synthesis stage and unrecognized values.
func Weight(s Stage) float64 {
	return weights[s]
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known evaluation stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
