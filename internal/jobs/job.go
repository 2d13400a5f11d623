// Package jobs implements asynchronous evaluation job management:
// submission with content-addressed cache short-circuiting, a bounded
// worker pool, in-memory job tracking with monotonic progress, and
// retention-based sweeping of finished jobs.
package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/laurel/internal/essays"
)

// Status is the lifecycle state of an evaluation job.
type Status string

// Valid job statuses. Completed and Error are terminal.
const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Progress milestones. Progress only ever increases for a given job.
const (
	ProgressAccepted  = 10
	ProgressGraded    = 60
	ProgressPersisted = 90
	ProgressComplete  = 100
)

// Job is a point-in-time snapshot of an evaluation job. Result is
// populated only on completion; Error only on failure.
type Job struct {
	ID          uuid.UUID     `json:"job_id"`
	Status      Status        `json:"status"`
	Progress    int           `json:"progress"`
	Result      *essays.Essay `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// Stats summarizes the jobs currently tracked in the store.
type Stats struct {
	Total      int `json:"total"`
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Errored    int `json:"errored"`
}
