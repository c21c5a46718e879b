package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"easy-matters/internal/domain"
	resp "easy-matters/internal/transport/http/response"
)

// Timeout bounds the request context; GORM calls made WithContext inherit it.
// Handlers that fail with the context error answer 504 themselves; the
// fallback here covers handlers that return without writing.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			resp.Abort(c, domain.ErrTimeout, domain.ErrTimeout.Msg)
		}
	}
}
