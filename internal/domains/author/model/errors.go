package model

import "library-backend/internal/shared/apperror"

var (
	ErrAuthorNotFound = apperror.NotFound("author")
	ErrEmailTaken     = apperror.Conflict("an author with this email already exists")
	ErrAuthorHasBooks = apperror.Conflict("author is referenced by existing books")
)
