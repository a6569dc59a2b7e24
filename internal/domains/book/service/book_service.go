package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared"
	"library-backend/internal/shared/apperror"
)

type bookService struct {
	repo    repository.RepositoryInterface
	authors AuthorReader
}

// NewBookService wires the book business rules over the book repository and a
// read-only view of authors.
func NewBookService(repo repository.RepositoryInterface, authors AuthorReader) ServiceInterface {
	return &bookService{
		repo:    repo,
		authors: authors,
	}
}

func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	// Step 1: pure field checks, no I/O.
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	var publishedDate *time.Time
	if req.PublishedDate != nil {
		var err error
		if publishedDate, err = model.ParsePublishedDate(*req.PublishedDate); err != nil {
			return nil, err
		}
	}

	// Step 2: ISBN uniqueness (all books, deleted included).
	if req.ISBN != nil {
		if err := s.checkISBNFree(ctx, *req.ISBN, uuid.Nil); err != nil {
			return nil, err
		}
	}

	// Step 3: primary author must exist and be active.
	if err := s.checkAuthorActive(ctx, req.PrimaryAuthorID, model.ErrPrimaryNotFound, model.ErrPrimaryDeleted); err != nil {
		return nil, err
	}

	// Step 4: co-author active, then distinct from primary.
	if req.CoAuthorID != nil {
		if err := s.checkAuthorActive(ctx, *req.CoAuthorID, model.ErrCoAuthorNotFound, model.ErrCoAuthorDeleted); err != nil {
			return nil, err
		}
		if *req.CoAuthorID == req.PrimaryAuthorID {
			return nil, model.ErrSameAuthor
		}
	}

	// Step 5: persist.
	return s.repo.Create(ctx, &model.Book{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		ISBN:            req.ISBN,
		PublishedDate:   publishedDate,
		PrimaryAuthorID: req.PrimaryAuthorID,
		CoAuthorID:      req.CoAuthorID,
	})
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.IsDeleted() {
		return nil, model.ErrBookNotFound
	}
	return b, nil
}

func (s *bookService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	if err := shared.ValidatePageWindow(filter.Limit, filter.Offset); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, filter)
}

func (s *bookService) Search(ctx context.Context, query string, filter model.BookFilter) ([]model.Book, int64, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, 0, apperror.ValidationField("q", "search query must be at least 2 characters long")
	}

	filter.Search = query
	return s.List(ctx, filter)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsDeleted() {
		return nil, model.ErrBookNotFound
	}

	// Both author slots supplied and equal: fail before any author lookup.
	if req.PrimaryAuthorID != nil && req.CoAuthorID.Set && req.CoAuthorID.Valid &&
		*req.PrimaryAuthorID == req.CoAuthorID.Value {
		return nil, model.ErrSameAuthor
	}

	// Step 1: pure field checks on supplied fields.
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	updated := *current
	updated.PrimaryAuthor = nil
	updated.CoAuthor = nil

	if req.Title != nil {
		updated.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description.Set {
		if req.Description.Valid {
			updated.Description = &req.Description.Value
		} else {
			updated.Description = nil
		}
	}
	if req.PublishedDate.Set {
		if req.PublishedDate.Valid {
			publishedDate, err := model.ParsePublishedDate(req.PublishedDate.Value)
			if err != nil {
				return nil, err
			}
			updated.PublishedDate = publishedDate
		} else {
			updated.PublishedDate = nil
		}
	}

	// Step 2: ISBN uniqueness, excluding this book.
	if req.ISBN.Set {
		if req.ISBN.Valid {
			if err := s.checkISBNFree(ctx, req.ISBN.Value, id); err != nil {
				return nil, err
			}
			updated.ISBN = &req.ISBN.Value
		} else {
			updated.ISBN = nil
		}
	}

	// Step 3: primary author, if supplied.
	if req.PrimaryAuthorID != nil {
		if err := s.checkAuthorActive(ctx, *req.PrimaryAuthorID, model.ErrPrimaryNotFound, model.ErrPrimaryDeleted); err != nil {
			return nil, err
		}
		updated.PrimaryAuthorID = *req.PrimaryAuthorID
	}

	// Step 4: co-author, if supplied, then distinctness of the effective pair.
	// A singly-supplied slot is compared against the stored other slot.
	if req.CoAuthorID.Set {
		if req.CoAuthorID.Valid {
			if err := s.checkAuthorActive(ctx, req.CoAuthorID.Value, model.ErrCoAuthorNotFound, model.ErrCoAuthorDeleted); err != nil {
				return nil, err
			}
			coID := req.CoAuthorID.Value
			updated.CoAuthorID = &coID
		} else {
			updated.CoAuthorID = nil
		}
	}
	if updated.CoAuthorID != nil && *updated.CoAuthorID == updated.PrimaryAuthorID {
		return nil, model.ErrSameAuthor
	}

	// Step 5: persist.
	return s.repo.Update(ctx, &updated)
}

func (s *bookService) UpdateCoAuthor(ctx context.Context, bookID uuid.UUID, coAuthorID *uuid.UUID) (*model.Book, error) {
	book, err := s.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// nil clears the slot unconditionally; no checks needed.
	if coAuthorID != nil {
		if err := s.checkAuthorActive(ctx, *coAuthorID, model.ErrCoAuthorNotFound, model.ErrCoAuthorDeleted); err != nil {
			return nil, err
		}
		if *coAuthorID == book.PrimaryAuthorID {
			return nil, model.ErrSameAuthor
		}
	}

	return s.repo.UpdateCoAuthor(ctx, bookID, coAuthorID)
}

func (s *bookService) TransferAuthorship(ctx context.Context, bookID uuid.UUID, newPrimaryID uuid.UUID) (*model.Book, error) {
	book, err := s.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAuthorActive(ctx, newPrimaryID, model.ErrPrimaryNotFound, model.ErrPrimaryDeleted); err != nil {
		return nil, err
	}

	// Taking over the co-author's slot would leave the same person in both
	// roles; reject instead of silently clearing the co-author.
	if book.CoAuthorID != nil && *book.CoAuthorID == newPrimaryID {
		return nil, model.ErrTransferToCoAuthor
	}

	// The repository re-checks the co-author slot under a row lock, so a
	// concurrent co-author change cannot break the invariant.
	return s.repo.TransferAuthorship(ctx, bookID, newPrimaryID)
}

func (s *bookService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.SoftDelete(ctx, id)
	return err
}

func (s *bookService) Restore(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.Restore(ctx, id)
}

func (s *bookService) HardDelete(ctx context.Context, id uuid.UUID) error {
	return s.repo.HardDelete(ctx, id)
}

// checkISBNFree is the fast-path uniqueness check. The unique index on
// books.isbn remains the authoritative guard against races.
func (s *bookService) checkISBNFree(ctx context.Context, isbn string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return model.ErrISBNTaken
	}
	return nil
}

// checkAuthorActive enforces the reference-integrity rule: the author must
// exist (notFoundErr otherwise) and carry no deletion timestamp (deletedErr).
func (s *bookService) checkAuthorActive(ctx context.Context, id uuid.UUID, notFoundErr, deletedErr error) error {
	author, err := s.authors.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return notFoundErr
		}
		return err
	}
	if author.IsDeleted() {
		return deletedErr
	}
	return nil
}
