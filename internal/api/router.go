package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradeflow/pulse/internal/cache"
	"github.com/tradeflow/pulse/internal/db"
	"github.com/tradeflow/pulse/pkg/config"
	"github.com/tradeflow/pulse/pkg/logging"
)

// Router sets up API routes
type Router struct {
	db      *db.DB
	cache   *cache.Cache
	cfg     *config.Config
	posts   *PostAPI
	pillars *PillarAPI
	users   UserStore
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	logger := logging.GetLogger().With(zap.String("component", "api-router"))

	repo := db.NewRepository(database.DB)
	pillarRepo := db.NewPillarRepository(repo)
	postRepo := db.NewPostRepository(repo)
	userRepo := db.NewUserRepository(repo)

	return &Router{
		db:      database,
		cache:   redisCache,
		cfg:     cfg,
		posts:   NewPostAPI(pillarRepo, postRepo, redisCache, cfg.API.ListLimit, cfg.API.CacheTTL(), logger),
		pillars: NewPillarAPI(pillarRepo, logger),
		users:   userRepo,
		logger:  logger,
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Anything but a registered method on a known path is a 405
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		abortWithError(c, NewError(http.StatusMethodNotAllowed, "method not allowed"))
	})

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	apiGroup := engine.Group("/api")
	{
		apiGroup.GET("/posts", r.posts.List)
		apiGroup.POST("/posts", RequireIdentity(r.cfg.Auth.IdentityHeader, r.users), r.posts.Create)
		apiGroup.GET("/pillars", r.pillars.List)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	httpStatus := http.StatusOK

	if err := r.db.Health(c.Request.Context()); err != nil {
		status = "DEGRADED"
		httpStatus = http.StatusServiceUnavailable
	}

	cacheStatus := "disabled"
	if r.cache != nil {
		cacheStatus = "OK"
		if err := r.cache.Health(c.Request.Context()); err != nil {
			cacheStatus = "DEGRADED"
		}
	}

	c.JSON(httpStatus, gin.H{
		"status":  status,
		"service": "tradeflow-pulse",
		"cache":   cacheStatus,
	})
}
