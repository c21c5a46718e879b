package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"easy-matters/internal/domain"
	resp "easy-matters/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests to protect the database pool.
// Waiting requests give up when their context ends.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, resp.Error(domain.KindUnavailable, "Server busy"))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
