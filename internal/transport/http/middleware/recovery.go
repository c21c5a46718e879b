package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"easy-matters/internal/domain"
	resp "easy-matters/internal/transport/http/response"
)

// RecoveryBody answers a recovered panic; logging is done by the zap
// recovery middleware that calls it.
func RecoveryBody(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Error(domain.KindInternal, "Unknown error"))
}
