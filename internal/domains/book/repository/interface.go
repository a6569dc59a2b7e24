package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface defines book data access. Reads resolve the primary and
// co-author references; mutations return the fresh row with references
// resolved.
type RepositoryInterface interface {
	// Create inserts a new book. A racing duplicate ISBN surfaces as
	// model.ErrISBNTaken via the unique index.
	Create(ctx context.Context, b *model.Book) (*model.Book, error)

	// FindByID returns the book regardless of soft-delete state, or
	// model.ErrBookNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// FindByISBN matches the stored ISBN across ALL books, deleted included:
	// an ISBN is never reusable. Returns (nil, nil) when no match exists.
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)

	// List returns one page plus the total count of rows matching the filter.
	// AuthorID matches either authorship role.
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)

	// Update persists the mutable fields of an existing live book.
	Update(ctx context.Context, b *model.Book) (*model.Book, error)

	// UpdateCoAuthor sets or clears only the co-author column.
	UpdateCoAuthor(ctx context.Context, id uuid.UUID, coAuthorID *uuid.UUID) (*model.Book, error)

	// TransferAuthorship reassigns the primary author, leaving the co-author
	// untouched. Runs in a transaction that re-checks the co-author slot, so
	// the distinctness invariant holds even against concurrent co-author
	// changes. Fails with model.ErrTransferToCoAuthor if the target currently
	// holds the co-author slot.
	TransferAuthorship(ctx context.Context, id uuid.UUID, newPrimaryID uuid.UUID) (*model.Book, error)

	SoftDelete(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Restore(ctx context.Context, id uuid.UUID) (*model.Book, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}
