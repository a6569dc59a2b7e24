package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
)

// ServiceInterface defines author business logic. All mutations run
// validate-then-write: any classified failure aborts with no partial state
// change.
type ServiceInterface interface {
	// Create validates name/bio/email and enforces email uniqueness among
	// non-deleted authors before persisting.
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)

	// GetByID returns a live author; soft-deleted ids report not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// List pages authors. Limit must be in [1,100] and offset >= 0; the search
	// term matches name or bio case-insensitively. Total is the full filtered
	// count regardless of the page window.
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Search is List with a mandatory query of at least 2 characters.
	Search(ctx context.Context, query string, filter model.AuthorFilter) ([]model.Author, int64, error)

	// Update applies a partial update. Email uniqueness excludes the author
	// being updated, so re-submitting the current email is allowed.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)

	// SoftDelete stamps the deletion timestamp. Books referencing the author
	// are left untouched.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Restore clears the deletion timestamp for any known id.
	Restore(ctx context.Context, id uuid.UUID) (*model.Author, error)

	// HardDelete physically removes the author. Privileged operation.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// Exists reports identity presence, ignoring soft-delete state.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Stats returns total/active/deleted counts.
	Stats(ctx context.Context) (*model.AuthorStats, error)
}
