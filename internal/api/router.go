package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/middleware"
	"github.com/followscope/followscope/internal/web"
	"github.com/followscope/followscope/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log          *logrus.Logger
	Hub          *ws.Hub
	Assembler    GraphAssembler
	Sessions     SessionStore
	Logs         LogSource
	CORSOrigins  []string
	OriginHosts  []string
	MaxUsernames int
	Version      string
}

// Router-level limits.
const (
	maxBodySize = 64 << 10 // 64 KB
	rateLimit   = 20       // requests per second per IP
	rateBurst   = 40       // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", SessionHeader},
		ExposeHeaders:    []string{SessionHeader, middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Hub, deps.Sessions, log, deps.Version)
	graphs := NewGraphHandler(deps.Assembler, deps.Sessions, deps.MaxUsernames, log)
	sessions := NewSessionHandler(deps.Sessions, log)
	logs := NewLogsHandler(deps.Logs)

	api.GET("/health", health.Liveness)

	api.POST("/graph_data", graphs.GraphData)

	api.GET("/sessions/:id/view", sessions.View)
	api.PUT("/sessions/:id/pins/:node", sessions.Pin)
	api.DELETE("/sessions/:id/pins/:node", sessions.Unpin)

	api.GET("/logs", logs.List)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(r.Group("/api"), deps)

	r.GET("/ws/logs", wsHandler(ctx, deps.Log, deps.Hub, deps.OriginHosts))
	r.GET("/", middleware.ContentSecurityPolicy(middleware.ViewerContentSecurityPolicy), web.Handler())

	return r
}
