package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
	"library-backend/internal/shared"
	"library-backend/internal/shared/apperror"
)

type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService wires the author business rules over a repository.
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	// Fast-path uniqueness check; the partial unique index catches races.
	if req.Email != nil {
		existing, err := s.repo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, model.ErrEmailTaken
		}
	}

	return s.repo.Create(ctx, req.ToEntity())
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsDeleted() {
		return nil, model.ErrAuthorNotFound
	}
	return a, nil
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	if err := shared.ValidatePageWindow(filter.Limit, filter.Offset); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, filter)
}

func (s *authorService) Search(ctx context.Context, query string, filter model.AuthorFilter) ([]model.Author, int64, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, 0, apperror.ValidationField("q", "search query must be at least 2 characters long")
	}

	filter.Search = query
	return s.List(ctx, filter)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsDeleted() {
		return nil, model.ErrAuthorNotFound
	}

	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio.Set {
		if req.Bio.Valid {
			updated.Bio = &req.Bio.Value
		} else {
			updated.Bio = nil
		}
	}
	if req.Email.Set {
		if req.Email.Valid {
			// Uniqueness check excludes the author being updated.
			existing, err := s.repo.FindByEmail(ctx, req.Email.Value)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, model.ErrEmailTaken
			}
			updated.Email = &req.Email.Value
		} else {
			updated.Email = nil
		}
	}

	return s.repo.Update(ctx, &updated)
}

func (s *authorService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	// No cascade: books keep their reference to the deleted author. Active
	// checks happen at book mutation time instead.
	_, err := s.repo.SoftDelete(ctx, id)
	return err
}

func (s *authorService) Restore(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	return s.repo.Restore(ctx, id)
}

func (s *authorService) HardDelete(ctx context.Context, id uuid.UUID) error {
	return s.repo.HardDelete(ctx, id)
}

func (s *authorService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}

func (s *authorService) Stats(ctx context.Context) (*model.AuthorStats, error) {
	return s.repo.Stats(ctx)
}
