package evaluation

import (
	"log/slog"
	"time"

	"github.com/JaimeStill/laurel/internal/grading"
)

// Runtime bundles the dependencies that evaluation nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Grader           grading.Grader
	Logger           *slog.Logger
	GradingTimeout   time.Duration
	SynthesisTimeout time.Duration
}
