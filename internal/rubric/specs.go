package rubric

const criterionSpec = `Respond with a JSON object matching this exact structure:

{
  "score": 4,
  "comment": "<explanation>",
  "fragments": [
    {
      "text": "<verbatim quote from the essay>",
      "impact": "positive",
      "justification": "<why this fragment matters>"
    }
  ]
}

Field constraints:
- score: Integer from 1 to 5. 1 = deficient, 2 = weak, 3 = adequate,
  4 = strong, 5 = outstanding. Never use values outside this range.
- comment: Specific, constructive explanation of the score grounded in
  the essay's actual content. Never empty.
- fragments: Array of verbatim quotes from the essay that informed the
  score. Each entry carries impact "positive" or "negative" and a brief
  justification. May be empty when no single passage stands out.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Evaluate only the criterion described in the instructions
- Quote fragments exactly as they appear in the essay
- Base the score solely on the essay and disclosure provided`

const synthesisSpec = `Respond with a JSON object matching this exact structure:

{
  "summary": "<overall evaluation summary>"
}

Field constraints:
- summary: Cohesive qualitative summary of the evaluation addressed to
  the essay's author. Several sentences covering overall strengths,
  areas for improvement, and concrete guidance. Never empty.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Draw only on the per-criterion results provided in the prompt
- Do not include numeric scores in the summary text`

var specs = map[Stage]string{
	StageTechnicalQuality:    criterionSpec,
	StageCreativity:          criterionSpec,
	StageThematicAlignment:   criterionSpec,
	StageCollectiveWellbeing: criterionSpec,
	StageResponsibleAI:       criterionSpec,
	StageImpactPotential:     criterionSpec,
	StageSynthesis:           synthesisSpec,
}

// Spec returns the hardcoded output specification for an evaluation stage.
// Specifications define the expected response format and behavioral
// constraints; unlike instructions, they cannot be overridden.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
