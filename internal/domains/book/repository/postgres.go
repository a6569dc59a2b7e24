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

	authormodel "library-backend/internal/domains/author/model"
	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/apperror"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

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
	bookCacheKeyPrefix = "book:"
	bookCacheTTL       = 15 * time.Minute
)

// selectBook joins both author slots so every read returns resolved
// references. The co-author join is LEFT, the slot being optional.
const selectBook = `
    SELECT b.id, b.title, b.description, b.isbn, b.published_date,
           b.primary_author_id, b.co_author_id,
           b.created_at, b.updated_at, b.deleted_at,
           pa.id, pa.name, pa.bio, pa.email, pa.created_at, pa.updated_at, pa.deleted_at,
           ca.id, ca.name, ca.bio, ca.email, ca.created_at, ca.updated_at, ca.deleted_at
    FROM books b
    JOIN authors pa ON pa.id = b.primary_author_id
    LEFT JOIN authors ca ON ca.id = b.co_author_id`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	var primary authormodel.Author
	var coID *uuid.UUID
	var coName *string
	var coBio, coEmail *string
	var coCreated, coUpdated, coDeleted *time.Time

	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &b.ISBN, &b.PublishedDate,
		&b.PrimaryAuthorID, &b.CoAuthorID,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
		&primary.ID, &primary.Name, &primary.Bio, &primary.Email,
		&primary.CreatedAt, &primary.UpdatedAt, &primary.DeletedAt,
		&coID, &coName, &coBio, &coEmail, &coCreated, &coUpdated, &coDeleted,
	)
	if err != nil {
		return nil, err
	}

	b.PrimaryAuthor = &primary
	if coID != nil {
		b.CoAuthor = &authormodel.Author{
			ID:        *coID,
			Name:      *coName,
			Bio:       coBio,
			Email:     coEmail,
			CreatedAt: *coCreated,
			UpdatedAt: *coUpdated,
			DeletedAt: coDeleted,
		}
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, description, isbn, published_date, primary_author_id, co_author_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		b.Title, b.Description, b.ISBN, b.PublishedDate, b.PrimaryAuthorID, b.CoAuthorID,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "isbn") {
			return nil, model.ErrISBNTaken
		}
		return nil, apperror.Internalf(err, "failed to create book")
	}

	return r.FindByID(ctx, id)
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var cached model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	b, err := scanBook(r.pool.QueryRow(ctx, selectBook+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, apperror.Internalf(err, "failed to get book by id")
	}

	r.cache.Set(ctx, cacheKey, b, bookCacheTTL)

	return b, nil
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	b, err := scanBook(r.pool.QueryRow(ctx, selectBook+` WHERE b.isbn = $1`, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internalf(err, "failed to get book by isbn")
	}
	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int64, error) {
	where, args := buildBookWhere(filter)

	query := fmt.Sprintf(`%s %s ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d`,
		selectBook, where, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, apperror.Internalf(err, "failed to query books")
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, apperror.Internalf(err, "failed to scan book")
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.Internalf(err, "error iterating books")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM books b ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperror.Internalf(err, "failed to count books")
	}

	return books, total, nil
}

func buildBookWhere(filter model.BookFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if !filter.IncludeDeleted {
		clauses = append(clauses, "b.deleted_at IS NULL")
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		args = append(args, pattern)
		clauses = append(clauses, fmt.Sprintf("(b.title ILIKE $%d OR b.description ILIKE $%d)", len(args), len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		clauses = append(clauses, fmt.Sprintf("(b.primary_author_id = $%d OR b.co_author_id = $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        UPDATE books
        SET title = $1, description = $2, isbn = $3, published_date = $4,
            primary_author_id = $5, co_author_id = $6, updated_at = NOW()
        WHERE id = $7 AND deleted_at IS NULL
        RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		b.Title, b.Description, b.ISBN, b.PublishedDate, b.PrimaryAuthorID, b.CoAuthorID, b.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		if isUniqueViolation(err, "isbn") {
			return nil, model.ErrISBNTaken
		}
		return nil, apperror.Internalf(err, "failed to update book")
	}

	r.invalidate(ctx, b.ID)

	return r.FindByID(ctx, id)
}

func (r *postgresRepository) UpdateCoAuthor(ctx context.Context, id uuid.UUID, coAuthorID *uuid.UUID) (*model.Book, error) {
	query := `
        UPDATE books
        SET co_author_id = $1, updated_at = NOW()
        WHERE id = $2 AND deleted_at IS NULL
        RETURNING id`

	var updatedID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, coAuthorID, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, apperror.Internalf(err, "failed to update co-author")
	}

	r.invalidate(ctx, id)

	return r.FindByID(ctx, id)
}

func (r *postgresRepository) TransferAuthorship(ctx context.Context, id uuid.UUID, newPrimaryID uuid.UUID) (*model.Book, error) {
	// Read-then-write on the same row: lock it so a concurrent co-author
	// update cannot slip between the distinctness check and the write.
	b, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Book, error) {
		var coAuthorID *uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT co_author_id FROM books WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
		).Scan(&coAuthorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrBookNotFound
			}
			return nil, apperror.Internalf(err, "failed to read book for transfer")
		}

		if coAuthorID != nil && *coAuthorID == newPrimaryID {
			return nil, model.ErrTransferToCoAuthor
		}

		_, err = tx.Exec(ctx,
			`UPDATE books SET primary_author_id = $1, updated_at = NOW() WHERE id = $2`, newPrimaryID, id)
		if err != nil {
			return nil, apperror.Internalf(err, "failed to transfer authorship")
		}

		updated, err := scanBook(tx.QueryRow(ctx, selectBook+` WHERE b.id = $1`, id))
		if err != nil {
			return nil, apperror.Internalf(err, "failed to reload book after transfer")
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id)

	return b, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `
        UPDATE books
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING id`

	var updatedID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, apperror.Internalf(err, "failed to soft delete book")
	}

	r.invalidate(ctx, id)

	return r.FindByID(ctx, id)
}

func (r *postgresRepository) Restore(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `
        UPDATE books
        SET deleted_at = NULL, updated_at = NOW()
        WHERE id = $1
        RETURNING id`

	var updatedID uuid.UUID
	if err := r.pool.QueryRow(ctx, query, id).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, apperror.Internalf(err, "failed to restore book")
	}

	r.invalidate(ctx, id)

	return r.FindByID(ctx, id)
}

func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return apperror.Internalf(err, "failed to delete book")
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	r.cache.Delete(ctx, bookCacheKeyPrefix+id.String())
}

func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName+pgErr.Detail, column)
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
