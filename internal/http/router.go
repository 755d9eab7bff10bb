package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/internal/audit"
	"github.com/guttosm/fba-quote-service/internal/metrics"
	"github.com/guttosm/fba-quote-service/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	// IdempotencyTTL enables Idempotency-Key replay of POST responses.
	// Zero disables it.
	IdempotencyTTL time.Duration
	// Recorder receives http_requests audit events when set.
	Recorder audit.Recorder
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultTimeoutConfig().Timeout,
	}
}

// Handlers groups the API handlers. Nil handlers leave their routes out.
type Handlers struct {
	Quotes    *Handler
	Transport *TransportHandler
	Audit     *AuditHandler
}

func (h Handlers) routeGroups() []RouteGroup {
	var groups []RouteGroup
	if h.Quotes != nil {
		groups = append(groups, NewQuoteRoutes(h.Quotes))
	}
	if h.Transport != nil {
		groups = append(groups, NewTransportRoutes(h.Transport))
	}
	if h.Audit != nil {
		groups = append(groups, NewAuditRoutes(h.Audit))
	}
	return groups
}

// NewRouter creates and configures the Gin router for the quote service.
// The returned stop function releases the rate limiter and the idempotency store.
func NewRouter(handlers Handlers, healthHandler *HealthHandler, cfg RouterConfig) (*gin.Engine, func()) {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	stop := configureAPIMiddleware(api, &cfg)
	for _, group := range handlers.routeGroups() {
		group.RegisterRoutes(api)
	}

	return router, stop
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Cache-Control", "X-Requested-With", "X-Request-ID", middleware.IdempotencyKeyHeader},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", middleware.IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.Recorder),
		middleware.ErrorHandler(),
	)
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware adds the per-client rate limit, the request
// deadline and idempotent replay to the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) func() {
	var stops []func()
	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		api.Use(limiter.RateLimit())
		stops = append(stops, limiter.Stop)
	}
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL > 0 {
		idemCfg := middleware.DefaultIdempotencyConfig()
		idemCfg.TTL = cfg.IdempotencyTTL
		store := middleware.NewIdempotencyStore(idemCfg)
		api.Use(middleware.Idempotency(store))
		stops = append(stops, store.Stop)
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}
