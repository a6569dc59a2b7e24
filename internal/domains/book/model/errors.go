package model

import "library-backend/internal/shared/apperror"

var (
	ErrBookNotFound    = apperror.NotFound("book")
	ErrISBNTaken       = apperror.Conflict("a book with this ISBN already exists")
	ErrPrimaryNotFound = apperror.NotFound("primary author")
	ErrCoAuthorNotFound = apperror.NotFound("co-author")

	ErrPrimaryDeleted  = apperror.ValidationField("primary_author_id", "cannot assign a deleted author as primary author")
	ErrCoAuthorDeleted = apperror.ValidationField("co_author_id", "cannot assign a deleted author as co-author")
	ErrSameAuthor      = apperror.ValidationField("co_author_id", "primary author and co-author cannot be the same person")
	ErrTransferToCoAuthor = apperror.Validation("cannot transfer authorship to the current co-author")
)
