package api

import (
	"github.com/JaimeStill/laurel/internal/essays"
	"github.com/JaimeStill/laurel/internal/evaluation"
	"github.com/JaimeStill/laurel/internal/grading"
	"github.com/JaimeStill/laurel/internal/jobs"
	"github.com/JaimeStill/laurel/internal/rubric"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Essays essays.System
	Rubric rubric.System
	Jobs   *jobs.Manager
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	essaySystem := essays.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	rubricSystem := rubric.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	grader := grading.NewGrader(runtime.Agent, rubricSystem, runtime.Logger)

	evalRuntime := &evaluation.Runtime{
		Grader:           grader,
		Logger:           runtime.Logger,
		GradingTimeout:   runtime.Evaluation.GradingTimeoutDuration(),
		SynthesisTimeout: runtime.Evaluation.SynthesisTimeoutDuration(),
	}

	manager := jobs.NewManager(
		jobs.Config{
			Workers:       runtime.Evaluation.Workers,
			QueueSize:     runtime.Evaluation.QueueSize,
			MinEssayChars: runtime.Evaluation.MinEssayChars,
			Retention:     runtime.Evaluation.JobRetentionDuration(),
			SweepInterval: runtime.Evaluation.SweepIntervalDuration(),
			SweepOnSubmit: runtime.Evaluation.SweepOnSubmit,
			ModelName:     runtime.Agent.Model.Name,
			ProviderName:  runtime.Agent.Provider.Name,
		},
		jobs.NewStore(),
		essaySystem,
		evalRuntime,
		runtime.Logger,
	)

	return &Domain{
		Essays: essaySystem,
		Rubric: rubricSystem,
		Jobs:   manager,
	}
}
