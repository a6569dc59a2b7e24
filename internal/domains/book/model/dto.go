package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	authormodel "library-backend/internal/domains/author/model"
	"library-backend/internal/shared"
	"library-backend/internal/shared/apperror"
)

const (
	MinTitleLength       = 1
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
)

// CreateBookRequest - POST /v1/books
type CreateBookRequest struct {
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	ISBN            *string    `json:"isbn,omitempty"`
	PublishedDate   *string    `json:"published_date,omitempty"`
	PrimaryAuthorID uuid.UUID  `json:"primary_author_id"`
	CoAuthorID      *uuid.UUID `json:"co_author_id,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	errs := validation.Errors{
		"title":       validateTitle(r.Title),
		"description": validateDescription(r.Description),
		"isbn":        validateISBNField(r.ISBN),
	}
	if r.PrimaryAuthorID == uuid.Nil {
		errs["primary_author_id"] = validation.NewError("required", "primary author is required")
	}
	return errs.Filter()
}

// UpdateBookRequest - PATCH /v1/books/:id
// Optional fields distinguish "absent" from "clear". Title and the primary
// author can be replaced but never cleared.
type UpdateBookRequest struct {
	Title           *string                     `json:"title,omitempty"`
	Description     shared.Optional[string]     `json:"description,omitzero"`
	ISBN            shared.Optional[string]     `json:"isbn,omitzero"`
	PublishedDate   shared.Optional[string]     `json:"published_date,omitzero"`
	PrimaryAuthorID *uuid.UUID                  `json:"primary_author_id,omitempty"`
	CoAuthorID      shared.Optional[uuid.UUID]  `json:"co_author_id,omitzero"`
}

func (r UpdateBookRequest) Validate() error {
	errs := validation.Errors{}
	if r.Title != nil {
		errs["title"] = validateTitle(*r.Title)
	}
	if r.Description.Set && r.Description.Valid {
		errs["description"] = validateDescription(&r.Description.Value)
	}
	if r.ISBN.Set && r.ISBN.Valid {
		errs["isbn"] = validateISBNField(&r.ISBN.Value)
	}
	return errs.Filter()
}

// UpdateCoAuthorRequest - PUT /v1/books/:id/co-author
// Null clears the slot unconditionally.
type UpdateCoAuthorRequest struct {
	CoAuthorID *uuid.UUID `json:"co_author_id"`
}

// TransferAuthorshipRequest - POST /v1/books/:id/transfer-authorship
type TransferAuthorshipRequest struct {
	NewPrimaryAuthorID uuid.UUID `json:"new_primary_author_id"`
}

func (r TransferAuthorshipRequest) Validate() error {
	if r.NewPrimaryAuthorID == uuid.Nil {
		return apperror.ValidationField("new_primary_author_id", "new primary author ID is required")
	}
	return nil
}

func validateTitle(title string) error {
	return validation.Validate(strings.TrimSpace(title),
		validation.Required.Error("book title is required"),
		validation.Length(MinTitleLength, MaxTitleLength).Error("book title must be 1-200 characters"),
	)
}

func validateDescription(desc *string) error {
	if desc == nil {
		return nil
	}
	return validation.Validate(*desc,
		validation.Length(0, MaxDescriptionLength).Error("book description must not exceed 5000 characters"),
	)
}

func validateISBNField(isbn *string) error {
	if isbn == nil {
		return nil
	}
	if !IsValidISBN(*isbn) {
		return validation.NewError("invalid_isbn", "invalid ISBN format, must be ISBN-10 or ISBN-13")
	}
	return nil
}

// ParsePublishedDate accepts a date-only or RFC 3339 timestamp and enforces
// that it is not in the future.
func ParsePublishedDate(raw string) (*time.Time, error) {
	var t time.Time
	var err error
	if t, err = time.Parse("2006-01-02", raw); err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, apperror.ValidationField("published_date", "invalid published date format")
		}
	}
	if t.After(time.Now()) {
		return nil, apperror.ValidationField("published_date", "published date cannot be in the future")
	}
	return &t, nil
}

// BookFilter - query parameters for list/search. AuthorID matches books where
// the author holds either role.
type BookFilter struct {
	Search         string     `form:"q"`
	AuthorID       *uuid.UUID `form:"author_id"`
	Limit          int        `form:"limit"`
	Offset         int        `form:"offset"`
	IncludeDeleted bool       `form:"include_deleted"`
}

// BookResponse is the wire shape of a book with resolved author references.
type BookResponse struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	ISBN          *string    `json:"isbn,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`

	PrimaryAuthorID uuid.UUID  `json:"primary_author_id"`
	CoAuthorID      *uuid.UUID `json:"co_author_id,omitempty"`

	PrimaryAuthor *authormodel.AuthorResponse `json:"primary_author,omitempty"`
	CoAuthor      *authormodel.AuthorResponse `json:"co_author,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (b Book) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		ISBN:            b.ISBN,
		PublishedDate:   b.PublishedDate,
		PrimaryAuthorID: b.PrimaryAuthorID,
		CoAuthorID:      b.CoAuthorID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		DeletedAt:       b.DeletedAt,
	}
	if b.PrimaryAuthor != nil {
		resp.PrimaryAuthor = b.PrimaryAuthor.ToResponse()
	}
	if b.CoAuthor != nil {
		resp.CoAuthor = b.CoAuthor.ToResponse()
	}
	return resp
}
