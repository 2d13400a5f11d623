package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/laurel/internal/essays"
)

// Store tracks evaluation jobs in memory. All methods are safe for
// concurrent use; reads return snapshots so callers never observe a
// job mid-mutation.
type Store struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[uuid.UUID]*Job),
	}
}

// Create registers a new queued job and returns its snapshot.
func (s *Store) Create() Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &Job{
		ID:        uuid.New(),
		Status:    StatusQueued,
		CreatedAt: time.Now(),
	}
	s.jobs[job.ID] = job
	return *job
}

// Get returns a snapshot of the job, if it exists.
func (s *Store) Get(id uuid.UUID) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// SetProcessing transitions a job to processing at the accepted milestone.
func (s *Store) SetProcessing(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}

	job.Status = StatusProcessing
	raiseProgress(job, ProgressAccepted)
}

// SetProgress raises a job's progress to the given milestone.
// Lower values are ignored: progress never moves backwards.
func (s *Store) SetProgress(id uuid.UUID, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}

	raiseProgress(job, progress)
}

// Complete transitions a job to completed with its persisted result.
func (s *Store) Complete(id uuid.UUID, result *essays.Essay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}

	now := time.Now()
	job.Status = StatusCompleted
	job.Result = result
	job.CompletedAt = &now
	raiseProgress(job, ProgressComplete)
}

// Fail transitions a job to the error state with the failure message.
func (s *Store) Fail(id uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.Status.Terminal() {
		return
	}

	now := time.Now()
	job.Status = StatusError
	job.Error = err.Error()
	job.CompletedAt = &now
}

// Sweep removes terminal jobs whose completion is older than the
// retention window and returns the number removed. Active jobs are
// never swept.
func (s *Store) Sweep(retention time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-retention)
	removed := 0

	for id, job := range s.jobs {
		if !job.Status.Terminal() || job.CompletedAt == nil {
			continue
		}
		if job.CompletedAt.Before(cutoff) {
			delete(s.jobs, id)
			removed++
		}
	}

	return removed
}

// Stats returns counts of tracked jobs by status.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{Total: len(s.jobs)}
	for _, job := range s.jobs {
		switch job.Status {
		case StatusQueued:
			stats.Queued++
		case StatusProcessing:
			stats.Processing++
		case StatusCompleted:
			stats.Completed++
		case StatusError:
			stats.Errored++
		}
	}
	return stats
}

func raiseProgress(job *Job, progress int) {
	if progress > job.Progress {
		job.Progress = progress
	}
}
