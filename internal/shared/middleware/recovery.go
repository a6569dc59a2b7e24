package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// Recovery converts panics into a 500 response instead of killing the worker.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", fmt.Errorf("%v", r))
				c.Abort()
				response.InternalServerError(c, "internal server error")
			}
		}()
		c.Next()
	}
}

// NoRoute is the catch-all for unknown paths.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	}
}
