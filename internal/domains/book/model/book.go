package model

import (
	"time"

	"github.com/google/uuid"

	authormodel "library-backend/internal/domains/author/model"
)

// Book is the domain entity. A book always has exactly one primary author and
// at most one co-author; the two must reference different authors whenever
// both are set.
type Book struct {
	ID uuid.UUID `json:"id" db:"id"`

	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description" db:"description"`
	ISBN          *string    `json:"isbn" db:"isbn"`
	PublishedDate *time.Time `json:"published_date" db:"published_date"`

	PrimaryAuthorID uuid.UUID  `json:"primary_author_id" db:"primary_author_id"`
	CoAuthorID      *uuid.UUID `json:"co_author_id" db:"co_author_id"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	// Resolved references, populated on reads. A referenced author may be
	// soft-deleted by now; active-author checks only run at mutation time.
	PrimaryAuthor *authormodel.Author `json:"primary_author,omitempty" db:"-"`
	CoAuthor      *authormodel.Author `json:"co_author,omitempty" db:"-"`
}

func (b *Book) IsDeleted() bool {
	return b.DeletedAt != nil
}

// HasCoAuthor reports whether the co-author slot is occupied.
func (b *Book) HasCoAuthor() bool {
	return b.CoAuthorID != nil
}
