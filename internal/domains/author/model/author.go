package model

import (
	"time"

	"github.com/google/uuid"
)

// Author is the domain entity. A soft-deleted author keeps its row and stays
// addressable by id; it is only excluded from default listings and from new
// book references.
type Author struct {
	ID uuid.UUID `json:"id" db:"id"`

	Name  string  `json:"name" db:"name"`
	Bio   *string `json:"bio" db:"bio"`
	Email *string `json:"email" db:"email"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted reports whether the author carries a deletion timestamp.
func (a *Author) IsDeleted() bool {
	return a.DeletedAt != nil
}

// IsActive is the check book mutations use: the author must exist and must
// not be soft-deleted at the time of the mutation.
func (a *Author) IsActive() bool {
	return a != nil && a.DeletedAt == nil
}
