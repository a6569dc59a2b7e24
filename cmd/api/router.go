package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func newRouter(c *container.Container) *gin.Engine {
	if !c.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.SecurityHeaders(),
		middleware.CORS(),
	)
	r.NoRoute(middleware.NoRoute())

	r.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNAVAILABLE", "database unavailable")
			return
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNAVAILABLE", "cache unavailable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(c.JWT))
	admin := middleware.RequireRole("admin")

	authors := api.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/stats", c.AuthorHandler.Stats)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.PATCH("/:id", c.AuthorHandler.Update)
		authors.DELETE("/:id", c.AuthorHandler.Delete)
		authors.POST("/:id/restore", c.AuthorHandler.Restore)
		authors.DELETE("/:id/permanent", admin, c.AuthorHandler.HardDelete)
	}

	books := api.Group("/books")
	{
		books.POST("", c.BookHandler.Create)
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.GetByID)
		books.PATCH("/:id", c.BookHandler.Update)
		books.PUT("/:id/co-author", c.BookHandler.UpdateCoAuthor)
		books.POST("/:id/transfer-authorship", c.BookHandler.TransferAuthorship)
		books.DELETE("/:id", c.BookHandler.Delete)
		books.POST("/:id/restore", c.BookHandler.Restore)
		books.DELETE("/:id/permanent", admin, c.BookHandler.HardDelete)
	}

	return r
}
