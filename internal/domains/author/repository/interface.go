package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
)

// RepositoryInterface defines author data access. The repository owns physical
// storage; it never applies business rules beyond translating storage errors
// into the domain taxonomy.
type RepositoryInterface interface {
	// Create inserts a new author and returns the stored row.
	// A racing duplicate email surfaces as model.ErrEmailTaken (the partial
	// unique index is the authoritative guard).
	Create(ctx context.Context, a *model.Author) (*model.Author, error)

	// FindByID returns the author regardless of soft-delete state, or
	// model.ErrAuthorNotFound. Callers decide whether deleted rows count.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// FindByEmail looks up a non-deleted author by exact email.
	// Returns (nil, nil) when no match exists.
	FindByEmail(ctx context.Context, email string) (*model.Author, error)

	// List returns one page plus the total count of rows matching the filter
	// (the same predicate, ignoring pagination). Soft-deleted rows are
	// excluded unless filter.IncludeDeleted is set.
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Update persists name/bio/email of an existing live author.
	Update(ctx context.Context, a *model.Author) (*model.Author, error)

	// SoftDelete stamps deleted_at on a live author.
	SoftDelete(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// Restore clears deleted_at. Restoring a live author is a no-op update.
	Restore(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// HardDelete physically removes the row. Fails with model.ErrAuthorHasBooks
	// while books still reference the author.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// ExistsByID reports presence ignoring soft-delete state.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Stats returns total/active/deleted counts.
	Stats(ctx context.Context) (*model.AuthorStats, error)
}
