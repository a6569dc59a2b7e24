package container

import (
	"context"
	"fmt"

	authorhandler "library-backend/internal/domains/author/handler"
	authorrepo "library-backend/internal/domains/author/repository"
	authorservice "library-backend/internal/domains/author/service"
	bookhandler "library-backend/internal/domains/book/handler"
	bookrepo "library-backend/internal/domains/book/repository"
	bookservice "library-backend/internal/domains/book/service"

	"library-backend/internal/config"
	infracache "library-backend/internal/infrastructure/cache"
	infradb "library-backend/internal/infrastructure/database"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"
)

// Container builds the dependency graph once at startup and owns the
// resources that need closing at shutdown.
type Container struct {
	Config *config.Config

	DB    *infradb.PostgresDB
	Cache *infracache.RedisCache
	JWT   *jwt.Manager

	AuthorHandler *authorhandler.AuthorHandler
	BookHandler   *bookhandler.BookHandler
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	db, err := infradb.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	redisCache, err := infracache.NewRedisCache(ctx, cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache: %w", err)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.Issuer)

	authorRepository := authorrepo.NewPostgresRepository(db.Pool, redisCache)
	authorService := authorservice.NewAuthorService(authorRepository)

	bookRepository := bookrepo.NewPostgresRepository(db.Pool, redisCache)
	bookService := bookservice.NewBookService(bookRepository, authorRepository)

	return &Container{
		Config:        cfg,
		DB:            db,
		Cache:         redisCache,
		JWT:           jwtManager,
		AuthorHandler: authorhandler.NewAuthorHandler(authorService),
		BookHandler:   bookhandler.NewBookHandler(bookService),
	}, nil
}

// Close releases the container's resources in reverse creation order.
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
