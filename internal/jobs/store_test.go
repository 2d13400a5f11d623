package jobs_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/laurel/internal/essays"
	"github.com/JaimeStill/laurel/internal/jobs"
)

func TestStoreCreate(t *testing.T) {
	store := jobs.NewStore()
	job := store.Create()

	if job.ID == uuid.Nil {
		t.Error("job ID should not be nil")
	}
	if job.Status != jobs.StatusQueued {
		t.Errorf("status = %s, want queued", job.Status)
	}
	if job.Progress != 0 {
		t.Errorf("progress = %d, want 0", job.Progress)
	}
	if job.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
	if job.CompletedAt != nil {
		t.Error("completed_at should be nil for a new job")
	}
}

func TestStoreGet(t *testing.T) {
	store := jobs.NewStore()
	created := store.Create()

	got, ok := store.Get(created.ID)
	if !ok {
		t.Fatal("job should exist")
	}
	if got.ID != created.ID {
		t.Errorf("id = %v, want %v", got.ID, created.ID)
	}

	if _, ok := store.Get(uuid.New()); ok {
		t.Error("unknown job should not be found")
	}
}

func TestStoreSetProcessing(t *testing.T) {
	t.Run("transitions queued job", func(t *testing.T) {
		store := jobs.NewStore()
		job := store.Create()

		store.SetProcessing(job.ID)

		got, _ := store.Get(job.ID)
		if got.Status != jobs.StatusProcessing {
			t.Errorf("status = %s, want processing", got.Status)
		}
		if got.Progress != jobs.ProgressAccepted {
			t.Errorf("progress = %d, want %d", got.Progress, jobs.ProgressAccepted)
		}
	})

	t.Run("ignores terminal jobs", func(t *testing.T) {
		store := jobs.NewStore()
		job := store.Create()
		store.Fail(job.ID, errors.New("boom"))

		store.SetProcessing(job.ID)

		got, _ := store.Get(job.ID)
		if got.Status != jobs.StatusError {
			t.Errorf("status = %s, want error to remain terminal", got.Status)
		}
	})
}

func TestStoreSetProgress(t *testing.T) {
	store := jobs.NewStore()
	job := store.Create()
	store.SetProcessing(job.ID)

	store.SetProgress(job.ID, jobs.ProgressGraded)
	got, _ := store.Get(job.ID)
	if got.Progress != jobs.ProgressGraded {
		t.Errorf("progress = %d, want %d", got.Progress, jobs.ProgressGraded)
	}

	// Progress never moves backwards.
	store.SetProgress(job.ID, jobs.ProgressAccepted)
	got, _ = store.Get(job.ID)
	if got.Progress != jobs.ProgressGraded {
		t.Errorf("progress = %d, want %d after lower milestone", got.Progress, jobs.ProgressGraded)
	}

	store.SetProgress(job.ID, jobs.ProgressPersisted)
	got, _ = store.Get(job.ID)
	if got.Progress != jobs.ProgressPersisted {
		t.Errorf("progress = %d, want %d", got.Progress, jobs.ProgressPersisted)
	}
}

func TestStoreComplete(t *testing.T) {
	store := jobs.NewStore()
	job := store.Create()
	store.SetProcessing(job.ID)

	essay := &essays.Essay{ID: uuid.New(), OverallScore: 4.35}
	store.Complete(job.ID, essay)

	got, _ := store.Get(job.ID)
	if got.Status != jobs.StatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if got.Progress != jobs.ProgressComplete {
		t.Errorf("progress = %d, want %d", got.Progress, jobs.ProgressComplete)
	}
	if got.Result == nil || got.Result.ID != essay.ID {
		t.Error("result should carry the persisted essay")
	}
	if got.CompletedAt == nil {
		t.Error("completed_at should be set")
	}

	// Terminal jobs cannot be re-completed or failed.
	store.Fail(job.ID, errors.New("late failure"))
	got, _ = store.Get(job.ID)
	if got.Status != jobs.StatusCompleted {
		t.Errorf("status = %s, completed job should stay completed", got.Status)
	}
}

func TestStoreFail(t *testing.T) {
	store := jobs.NewStore()
	job := store.Create()

	store.Fail(job.ID, errors.New("model unavailable"))

	got, _ := store.Get(job.ID)
	if got.Status != jobs.StatusError {
		t.Errorf("status = %s, want error", got.Status)
	}
	if got.Error != "model unavailable" {
		t.Errorf("error = %q, want model unavailable", got.Error)
	}
	if got.CompletedAt == nil {
		t.Error("completed_at should be set on failure")
	}
}

func TestStoreSweep(t *testing.T) {
	store := jobs.NewStore()

	old := store.Create()
	store.Complete(old.ID, &essays.Essay{ID: uuid.New()})

	active := store.Create()
	store.SetProcessing(active.ID)

	// A zero retention window sweeps anything already terminal.
	time.Sleep(5 * time.Millisecond)
	removed := store.Sweep(0)

	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := store.Get(old.ID); ok {
		t.Error("terminal job past retention should be removed")
	}
	if _, ok := store.Get(active.ID); !ok {
		t.Error("active job should never be swept")
	}

	// Terminal jobs inside the retention window survive.
	recent := store.Create()
	store.Complete(recent.ID, &essays.Essay{ID: uuid.New()})
	if removed := store.Sweep(time.Hour); removed != 0 {
		t.Errorf("removed = %d, want 0 within retention", removed)
	}
	if _, ok := store.Get(recent.ID); !ok {
		t.Error("recently completed job should survive sweep")
	}
}

func TestStoreStats(t *testing.T) {
	store := jobs.NewStore()

	store.Create()
	processing := store.Create()
	store.SetProcessing(processing.ID)
	completed := store.Create()
	store.Complete(completed.ID, &essays.Essay{ID: uuid.New()})
	failed := store.Create()
	store.Fail(failed.ID, errors.New("boom"))

	stats := store.Stats()
	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.Queued != 1 {
		t.Errorf("queued = %d, want 1", stats.Queued)
	}
	if stats.Processing != 1 {
		t.Errorf("processing = %d, want 1", stats.Processing)
	}
	if stats.Completed != 1 {
		t.Errorf("completed = %d, want 1", stats.Completed)
	}
	if stats.Errored != 1 {
		t.Errorf("errored = %d, want 1", stats.Errored)
	}
}
