package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/rafaelmeira/boatvest/internal/domain/error"
	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/infrastructure/adapter/api/dto"
)

// Recovery converts handler panics into a JSON 500 instead of a dropped
// connection, logging enough request context to find the offender.
func Recovery(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			logger.Error("Panic in request handler", map[string]any{
				"panic":     r,
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				domainerr.ErrorCode(domainerr.ErrInternalServer), "Internal server error"))
		}()

		c.Next()
	}
}
