package evaluation

import "errors"

// Node errors wrap failures from the grade and synthesize stages.
var (
	ErrGradeFailed     = errors.New("grade node failed")
	ErrSynthesisFailed = errors.New("synthesize node failed")
)
