package essays

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/laurel/pkg/pagination"
)

// System defines the public contract for essay domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Essay], error)

	Find(ctx context.Context, id uuid.UUID) (*Essay, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*Essay, error)

	// Lookup resolves an essay text to its cached evaluation. The bool
	// reports whether a record exists; a miss is not an error.
	Lookup(ctx context.Context, essayText string) (*Essay, bool, error)

	// Save persists a completed evaluation. When a concurrent save for
	// the same fingerprint already committed, the existing record is
	// returned and the new result is discarded.
	Save(ctx context.Context, cmd SaveCommand) (*Essay, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// Archive stores a source document in blob storage under the essay's
	// fingerprint and extracts the PDF page count when applicable.
	Archive(ctx context.Context, fingerprint, filename, contentType string, data []byte) (*ArchivedSource, error)

	// Source streams the archived source document for an essay along
	// with its content type. The caller must close the reader.
	Source(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
}
