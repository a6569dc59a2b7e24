package service

import (
	"context"

	"github.com/google/uuid"

	authormodel "library-backend/internal/domains/author/model"
	"library-backend/internal/domains/book/model"
)

// AuthorReader is the slice of the author repository the book service needs
// for reference-integrity checks. A soft-deleted author is still returned; the
// service decides whether deleted counts.
type AuthorReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*authormodel.Author, error)
}

// ServiceInterface defines book business logic.
//
// Every mutation runs its checks in a fixed order so error precedence is
// deterministic: pure field validation, then ISBN uniqueness, then primary
// author, then co-author and distinctness, then the write. Any failure aborts
// with no partial state change.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)

	// GetByID returns a live book with resolved author references.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// List pages books; the search term matches title or description, and
	// AuthorID matches either authorship role.
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error)

	// Search is List with a mandatory query of at least 2 characters.
	Search(ctx context.Context, query string, filter model.BookFilter) ([]model.Book, int64, error)

	// Update applies a partial update through the same pipeline. When both
	// author ids are supplied and equal it fails before any lookup; when only
	// one is supplied it is checked against the stored value of the other.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error)

	// UpdateCoAuthor sets or clears only the co-author slot. A non-nil target
	// must be active and distinct from the current primary author; nil clears
	// unconditionally.
	UpdateCoAuthor(ctx context.Context, bookID uuid.UUID, coAuthorID *uuid.UUID) (*model.Book, error)

	// TransferAuthorship reassigns the primary-author role, leaving the
	// co-author untouched. Transferring to the current co-author is rejected
	// rather than silently clearing the slot.
	TransferAuthorship(ctx context.Context, bookID uuid.UUID, newPrimaryID uuid.UUID) (*model.Book, error)

	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*model.Book, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}
