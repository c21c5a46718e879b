package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"easy-matters/internal/core/auth"
	"easy-matters/internal/core/config"
	"easy-matters/internal/core/server"
	"easy-matters/internal/transport/http/handler"
	mdw "easy-matters/internal/transport/http/middleware"
)

// Deps is what the API engine is assembled from.
type Deps struct {
	Log      *zap.Logger
	HTTP     config.HTTP
	Origins  []string
	JWT      *auth.JWTer
	Ping     handler.Pinger
	Registry *Registry
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, d.Origins, mdw.RecoveryBody)

	// requests rejected by the limits are still counted and logged
	r.Use(mdw.RequestID(), mdw.Metrics(), mdw.AccessLog(d.Log))
	r.Use(guards(d.HTTP)...)

	handler.MountHealth(r, d.Ping, d.Log)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWT))

	d.Registry.MountAll(api, authed)
	return r
}

// guards returns the request limits that are switched on; a zero or
// negative setting disables that limit.
func guards(h config.HTTP) []gin.HandlerFunc {
	var hs []gin.HandlerFunc
	if h.RateLimitRPS > 0 && h.RateLimitBurst > 0 {
		hs = append(hs, mdw.RateLimitPerIP(rate.Limit(h.RateLimitRPS), h.RateLimitBurst, 10*time.Minute))
	}
	if h.MaxInFlight > 0 {
		hs = append(hs, mdw.ConcurrencyLimit(h.MaxInFlight))
	}
	if h.MaxBodyBytes > 0 {
		hs = append(hs, mdw.MaxBodyBytes(h.MaxBodyBytes))
	}
	if h.RequestTimeoutSec > 0 {
		hs = append(hs, mdw.Timeout(time.Duration(h.RequestTimeoutSec)*time.Second))
	}
	return hs
}
