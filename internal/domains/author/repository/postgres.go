package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/apperror"
	"library-backend/pkg/cache"
)

// postgresRepository implements RepositoryInterface on pgxpool, with a redis
// read-through cache on id lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	authorCacheTTL       = 15 * time.Minute

	authorColumns = "id, name, bio, email, created_at, updated_at, deleted_at"
)

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Bio,
		&a.Email,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, bio, email)
        VALUES ($1, $2, $3)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Bio, a.Email))
	if err != nil {
		if isUniqueViolation(err, "email") {
			return nil, model.ErrEmailTaken
		}
		return nil, apperror.Internalf(err, "failed to create author")
	}

	return created, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, apperror.Internalf(err, "failed to get author by id")
	}

	r.cache.Set(ctx, cacheKey, a, authorCacheTTL)

	return a, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE email = $1 AND deleted_at IS NULL`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internalf(err, "failed to get author by email")
	}

	return a, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	where, args := buildAuthorWhere(filter)

	query := fmt.Sprintf(`
        SELECT %s FROM authors
        %s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d`,
		authorColumns, where, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, apperror.Internalf(err, "failed to query authors")
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, 0, apperror.Internalf(err, "failed to scan author")
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.Internalf(err, "error iterating authors")
	}

	// Same predicate, without pagination.
	var total int64
	countQuery := `SELECT COUNT(*) FROM authors ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperror.Internalf(err, "failed to count authors")
	}

	return authors, total, nil
}

// buildAuthorWhere renders the filter predicate used by both the page query
// and the count query, so total always matches the data filter.
func buildAuthorWhere(filter model.AuthorFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if !filter.IncludeDeleted {
		clauses = append(clauses, "deleted_at IS NULL")
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		args = append(args, pattern)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR bio ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET name = $1, bio = $2, email = $3, updated_at = NOW()
        WHERE id = $4 AND deleted_at IS NULL
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.Bio, a.Email, a.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		if isUniqueViolation(err, "email") {
			return nil, model.ErrEmailTaken
		}
		return nil, apperror.Internalf(err, "failed to update author")
	}

	r.invalidate(ctx, a.ID)

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `
        UPDATE authors
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING ` + authorColumns

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, apperror.Internalf(err, "failed to soft delete author")
	}

	r.invalidate(ctx, id)

	return a, nil
}

func (r *postgresRepository) Restore(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `
        UPDATE authors
        SET deleted_at = NULL, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + authorColumns

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		// Restoring may collide with a live author who took the email while
		// this one was deleted.
		if isUniqueViolation(err, "email") {
			return nil, model.ErrEmailTaken
		}
		return nil, apperror.Internalf(err, "failed to restore author")
	}

	r.invalidate(ctx, id)

	return a, nil
}

func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return model.ErrAuthorHasBooks
		}
		return apperror.Internalf(err, "failed to delete author")
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, apperror.Internalf(err, "failed to check author existence")
	}
	return exists, nil
}

func (r *postgresRepository) Stats(ctx context.Context) (*model.AuthorStats, error) {
	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE deleted_at IS NULL),
               COUNT(*) FILTER (WHERE deleted_at IS NOT NULL)
        FROM authors`

	var stats model.AuthorStats
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.Total, &stats.Active, &stats.Deleted); err != nil {
		return nil, apperror.Internalf(err, "failed to load author stats")
	}

	return &stats, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())
}

// isUniqueViolation matches SQLSTATE 23505 on the named column. The unique
// index is the authoritative uniqueness guard; the service-level lookup is
// only a fast path.
func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName+pgErr.Detail, column)
}

// escapeLike neutralizes ILIKE wildcards in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
