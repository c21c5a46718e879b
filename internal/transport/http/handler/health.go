package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"easy-matters/internal/domain"
	resp "easy-matters/internal/transport/http/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// MountHealth registers GET / and GET /health on the root engine.
func MountHealth(r gin.IRoutes, ping Pinger, l *zap.Logger) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Health check ok"})
	})
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			l.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, resp.Error(domain.KindUnavailable, "Database unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
}
