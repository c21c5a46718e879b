package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"easy-matters/internal/domain"
	resp "easy-matters/internal/transport/http/response"
)

// MaxBodyBytes caps request bodies; reads past n fail and binding reports
// an invalid body.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(domain.KindInvalidInput, "Request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
