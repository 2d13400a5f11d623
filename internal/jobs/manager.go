package jobs

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/JaimeStill/laurel/internal/essays"
	"github.com/JaimeStill/laurel/internal/evaluation"
	"github.com/JaimeStill/laurel/pkg/lifecycle"
)

// Repository is the slice of the essay domain the job manager depends
// on. essays.System satisfies it.
type Repository interface {
	Lookup(ctx context.Context, essayText string) (*essays.Essay, bool, error)
	Save(ctx context.Context, cmd essays.SaveCommand) (*essays.Essay, error)
	Archive(ctx context.Context, fingerprint, filename, contentType string, data []byte) (*essays.ArchivedSource, error)
}

// Config holds job manager tuning parameters. Model and provider names
// are recorded on persisted evaluations for provenance.
type Config struct {
	Workers       int
	QueueSize     int
	MinEssayChars int
	Retention     time.Duration
	SweepInterval time.Duration
	SweepOnSubmit bool
	ModelName     string
	ProviderName  string
}

// SubmitCommand carries an essay submission. Source fields are optional
// and present only when the client uploaded a source document.
type SubmitCommand struct {
	EssayText         string
	DisclosureText    string
	Filename          string
	SourceContentType string
	SourceData        []byte
}

// SubmitResult is the outcome of a submission: either a cache hit with
// the stored evaluation, or the job tracking the pending evaluation.
// JobID is a pointer so cache hits omit it from the JSON response.
type SubmitResult struct {
	CacheHit     bool          `json:"cache_hit"`
	Deduplicated bool          `json:"deduplicated,omitempty"`
	Result       *essays.Essay `json:"result,omitempty"`
	JobID        *uuid.UUID    `json:"job_id,omitempty"`
	Status       Status        `json:"status,omitempty"`
}

type task struct {
	jobID       uuid.UUID
	fingerprint string
	cmd         SubmitCommand
	source      *essays.ArchivedSource
}

// Manager coordinates essay evaluation jobs: validation, cache lookup,
// in-flight deduplication, a bounded worker pool, and job sweeping.
type Manager struct {
	cfg    Config
	store  *Store
	essays Repository
	eval   *evaluation.Runtime
	logger *slog.Logger
	queue  chan task

	mu       sync.Mutex
	inflight map[string]uuid.UUID
}

// NewManager creates a Manager. Workers are not started until Start is
// called with the lifecycle coordinator.
func NewManager(
	cfg Config,
	store *Store,
	essaySystem Repository,
	eval *evaluation.Runtime,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		cfg:      cfg,
		store:    store,
		essays:   essaySystem,
		eval:     eval,
		logger:   logger.With("system", "jobs"),
		queue:    make(chan task, max(cfg.QueueSize, 1)),
		inflight: make(map[string]uuid.UUID),
	}
}

// Start launches the worker pool and the periodic sweeper. Workers run
// on the lifecycle context: shutdown cancels any in-flight evaluations,
// which then surface as failed jobs.
func (m *Manager) Start(lc *lifecycle.Coordinator) error {
	workers := max(m.cfg.Workers, 1)
	m.logger.Info("starting evaluation workers", "workers", workers, "queue_size", cap(m.queue))

	ctx := lc.Context()
	for i := range workers {
		go m.worker(ctx, i+1)
	}

	if m.cfg.SweepInterval > 0 {
		go m.sweeper(ctx)
	}

	return nil
}

// Submit validates and enqueues an essay for evaluation. Previously
// evaluated essays return immediately as a cache hit. A submission
// whose fingerprint is already being evaluated returns the existing
// job rather than starting a second evaluation.
func (m *Manager) Submit(ctx context.Context, cmd SubmitCommand) (*SubmitResult, error) {
	trimmed := strings.TrimSpace(cmd.EssayText)
	if utf8.RuneCountInString(trimmed) < m.cfg.MinEssayChars {
		return nil, ErrEssayTooShort
	}

	if m.cfg.SweepOnSubmit {
		m.store.Sweep(m.cfg.Retention)
	}

	fingerprint := essays.Fingerprint(cmd.EssayText)

	if essay, ok, err := m.essays.Lookup(ctx, cmd.EssayText); err != nil {
		return nil, err
	} else if ok {
		m.logger.Info("cache hit", "fingerprint", fingerprint, "essay_id", essay.ID)
		return &SubmitResult{CacheHit: true, Result: essay}, nil
	}

	if id, ok := m.inflightID(fingerprint); ok {
		return m.deduplicated(id), nil
	}

	var source *essays.ArchivedSource
	if len(cmd.SourceData) > 0 {
		archived, err := m.essays.Archive(ctx, fingerprint, cmd.Filename, cmd.SourceContentType, cmd.SourceData)
		if err != nil {
			return nil, err
		}
		source = archived
	}

	m.mu.Lock()
	// A concurrent submission may have registered while archiving.
	if id, ok := m.inflight[fingerprint]; ok {
		m.mu.Unlock()
		return m.deduplicated(id), nil
	}

	job := m.store.Create()
	m.inflight[fingerprint] = job.ID

	select {
	case m.queue <- task{jobID: job.ID, fingerprint: fingerprint, cmd: cmd, source: source}:
		m.mu.Unlock()
	default:
		delete(m.inflight, fingerprint)
		m.mu.Unlock()
		m.store.Fail(job.ID, ErrQueueFull)
		return nil, ErrQueueFull
	}

	m.logger.Info("job queued", "job_id", job.ID, "fingerprint", fingerprint)
	return &SubmitResult{JobID: &job.ID, Status: StatusQueued}, nil
}

// deduplicated reports an existing in-flight job for a resubmitted
// fingerprint, with the job's current status rather than assuming it
// is still queued.
func (m *Manager) deduplicated(id uuid.UUID) *SubmitResult {
	status := StatusQueued
	if job, ok := m.store.Get(id); ok {
		status = job.Status
	}
	return &SubmitResult{JobID: &id, Status: status, Deduplicated: true}
}

// Poll returns a snapshot of a job by ID.
func (m *Manager) Poll(id uuid.UUID) (*Job, error) {
	job, ok := m.store.Get(id)
	if !ok {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

// Sweep removes finished jobs older than the retention window.
func (m *Manager) Sweep() int {
	removed := m.store.Sweep(m.cfg.Retention)
	if removed > 0 {
		m.logger.Info("jobs swept", "removed", removed)
	}
	return removed
}

// Stats returns counts of tracked jobs by status.
func (m *Manager) Stats() Stats {
	return m.store.Stats()
}

func (m *Manager) worker(ctx context.Context, id int) {
	logger := m.logger.With("worker", id)

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case t := <-m.queue:
			m.run(ctx, logger, t)
		}
	}
}

func (m *Manager) run(ctx context.Context, logger *slog.Logger, t task) {
	defer m.clearInflight(t.fingerprint)

	m.store.SetProcessing(t.jobID)
	logger.Info("job started", "job_id", t.jobID, "fingerprint", t.fingerprint)

	result, err := evaluation.Execute(ctx, m.eval, t.cmd.EssayText, t.cmd.DisclosureText)
	if err != nil {
		logger.Error("evaluation failed", "job_id", t.jobID, "error", err)
		m.store.Fail(t.jobID, err)
		return
	}

	m.store.SetProgress(t.jobID, ProgressGraded)

	essay, err := m.essays.Save(ctx, buildSaveCommand(t, result, m.cfg))
	if err != nil {
		logger.Error("persist failed", "job_id", t.jobID, "error", err)
		m.store.Fail(t.jobID, err)
		return
	}

	m.store.SetProgress(t.jobID, ProgressPersisted)
	m.store.Complete(t.jobID, essay)

	logger.Info(
		"job completed",
		"job_id", t.jobID,
		"essay_id", essay.ID,
		"overall_score", essay.OverallScore,
	)
}

func (m *Manager) sweeper(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) inflightID(fingerprint string) (uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.inflight[fingerprint]
	return id, ok
}

func (m *Manager) clearInflight(fingerprint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, fingerprint)
}

func buildSaveCommand(t task, result *evaluation.Result, cfg Config) essays.SaveCommand {
	cmd := essays.SaveCommand{
		EssayText:    t.cmd.EssayText,
		OverallScore: result.OverallScore,
		Criteria:     result.Criteria,
		Summary:      result.Summary,
		ModelName:    cfg.ModelName,
		ProviderName: cfg.ProviderName,
		EvaluatedAt:  result.CompletedAt,
	}

	if disclosure := strings.TrimSpace(t.cmd.DisclosureText); disclosure != "" {
		cmd.DisclosureText = &disclosure
	}
	if t.cmd.Filename != "" {
		filename := t.cmd.Filename
		cmd.Filename = &filename
	}
	if t.source != nil {
		cmd.SourceKey = &t.source.Key
		cmd.SourceContentType = &t.source.ContentType
		cmd.PageCount = t.source.PageCount
	}

	return cmd
}
