package essays

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/laurel/pkg/pagination"
	"github.com/JaimeStill/laurel/pkg/query"
	"github.com/JaimeStill/laurel/pkg/repository"
	"github.com/JaimeStill/laurel/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an essay repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "essays"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Essay], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "EssayText", "Summary", "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count essays: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEssay)
	if err != nil {
		return nil, fmt.Errorf("query essays: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Essay, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEssay)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) FindByFingerprint(ctx context.Context, fingerprint string) (*Essay, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Fingerprint", fingerprint)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEssay)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

func (r *repo) Lookup(ctx context.Context, essayText string) (*Essay, bool, error) {
	e, err := r.FindByFingerprint(ctx, Fingerprint(essayText))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return e, true, nil
}

const essayColumns = `id, fingerprint, essay_text, disclosure_text, filename,
		source_key, source_content_type, page_count, overall_score, criteria,
		summary, model_name, provider_name, evaluated_at`

func (r *repo) Save(ctx context.Context, cmd SaveCommand) (*Essay, error) {
	fingerprint := Fingerprint(cmd.EssayText)

	criteriaJSON, err := json.Marshal(cmd.Criteria)
	if err != nil {
		return nil, fmt.Errorf("marshal criteria: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO essays(
			fingerprint, essay_text, disclosure_text, filename,
			source_key, source_content_type, page_count, overall_score,
			criteria, summary, model_name, provider_name, evaluated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (fingerprint) DO NOTHING
		RETURNING %s`, essayColumns)

	args := []any{
		fingerprint,
		cmd.EssayText,
		cmd.DisclosureText,
		cmd.Filename,
		cmd.SourceKey,
		cmd.SourceContentType,
		cmd.PageCount,
		cmd.OverallScore,
		criteriaJSON,
		cmd.Summary,
		cmd.ModelName,
		cmd.ProviderName,
		cmd.EvaluatedAt,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Essay, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEssay)
	})

	if err != nil {
		// DO NOTHING returns no row when a concurrent save for the same
		// fingerprint won the race; the committed record is authoritative.
		if errors.Is(err, sql.ErrNoRows) {
			existing, findErr := r.FindByFingerprint(ctx, fingerprint)
			if findErr != nil {
				return nil, fmt.Errorf("resolve concurrent save for %s: %w", fingerprint, findErr)
			}
			r.logger.Info("concurrent save resolved to existing essay", "fingerprint", fingerprint)
			return existing, nil
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("essay saved", "id", e.ID, "fingerprint", e.Fingerprint, "overall_score", e.OverallScore)
	return &e, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM essays WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if e.SourceKey != nil {
		if delErr := r.storage.Delete(ctx, *e.SourceKey); delErr != nil {
			r.logger.Warn(
				"blob delete failed after DB delete",
				"key", *e.SourceKey,
				"error", delErr,
			)
		}
	}

	r.logger.Info("essay deleted", "id", id)
	return nil
}

func (r *repo) Archive(
	ctx context.Context,
	fingerprint, filename, contentType string,
	data []byte,
) (*ArchivedSource, error) {
	key := buildSourceKey(fingerprint, sanitizeFilename(filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("upload source blob: %w", err)
	}

	pageCount := extractPDFPageCount(r.logger, data, contentType)

	r.logger.Info("source archived", "key", key, "size_bytes", len(data))
	return &ArchivedSource{
		Key:         key,
		ContentType: contentType,
		PageCount:   pageCount,
	}, nil
}

func (r *repo) Source(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	e, err := r.Find(ctx, id)
	if err != nil {
		return nil, "", err
	}

	if e.SourceKey == nil {
		return nil, "", ErrNoSource
	}

	body, err := r.storage.Download(ctx, *e.SourceKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrNoSource
		}
		return nil, "", fmt.Errorf("download source blob: %w", err)
	}

	contentType := "application/octet-stream"
	if e.SourceContentType != nil {
		contentType = *e.SourceContentType
	}

	return body, contentType, nil
}

func buildSourceKey(fingerprint, filename string) string {
	return fmt.Sprintf("essays/%s/%s", fingerprint, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "essay"
	}
	return url.PathEscape(name)
}

func extractPDFPageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}
