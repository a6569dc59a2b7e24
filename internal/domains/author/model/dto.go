package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared"
)

// Validation limits
const (
	MinNameLength = 2
	MaxNameLength = 100
	MaxBioLength  = 2000
)

// emailPattern is deliberately simpler than full RFC parsing: exactly one @,
// non-empty local and domain parts, and a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateAuthorRequest - POST /v1/authors
type CreateAuthorRequest struct {
	Name  string  `json:"name"`
	Bio   *string `json:"bio,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.Errors{
		"name":  validateName(r.Name),
		"bio":   validateBio(r.Bio),
		"email": validateEmail(r.Email),
	}.Filter()
}

// UpdateAuthorRequest - PATCH /v1/authors/:id
// Pointer/Optional fields distinguish "absent" from "clear": bio and email may
// be nulled out, name may only be replaced.
type UpdateAuthorRequest struct {
	Name  *string                  `json:"name,omitempty"`
	Bio   shared.Optional[string]  `json:"bio,omitzero"`
	Email shared.Optional[string]  `json:"email,omitzero"`
}

func (r UpdateAuthorRequest) Validate() error {
	errs := validation.Errors{}
	if r.Name != nil {
		errs["name"] = validateName(*r.Name)
	}
	if r.Bio.Set && r.Bio.Valid {
		errs["bio"] = validateBio(&r.Bio.Value)
	}
	if r.Email.Set && r.Email.Valid {
		errs["email"] = validateEmail(&r.Email.Value)
	}
	return errs.Filter()
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	return validation.Validate(trimmed,
		validation.Required.Error("name is required"),
		validation.Length(MinNameLength, MaxNameLength).Error("name must be 2-100 characters"),
	)
}

func validateBio(bio *string) error {
	if bio == nil {
		return nil
	}
	return validation.Validate(*bio,
		validation.Length(0, MaxBioLength).Error("bio must not exceed 2000 characters"),
	)
}

func validateEmail(email *string) error {
	if email == nil {
		return nil
	}
	return validation.Validate(*email,
		validation.Required.Error("email must not be empty"),
		validation.Match(emailPattern).Error("invalid email format"),
	)
}

// AuthorFilter - query parameters for list/search
type AuthorFilter struct {
	Search         string `form:"q"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// AuthorStats - aggregate counts across all authors
type AuthorStats struct {
	Total   int64 `json:"total_authors"`
	Active  int64 `json:"active_authors"`
	Deleted int64 `json:"deleted_authors"`
}

// AuthorResponse is the wire shape of an author.
type AuthorResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Bio       *string    `json:"bio,omitempty"`
	Email     *string    `json:"email,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (a Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		DeletedAt: a.DeletedAt,
	}
}

// ToEntity converts the create request to a new Author entity. Name is stored
// trimmed; bio and email are stored as provided.
func (r *CreateAuthorRequest) ToEntity() *Author {
	return &Author{
		Name:  strings.TrimSpace(r.Name),
		Bio:   r.Bio,
		Email: r.Email,
	}
}
