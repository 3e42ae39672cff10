package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bytebrief/bytebrief/internal/admin"
	"github.com/bytebrief/bytebrief/internal/auth"
	"github.com/bytebrief/bytebrief/internal/cache"
	"github.com/bytebrief/bytebrief/internal/content"
	"github.com/bytebrief/bytebrief/internal/db"
	"github.com/bytebrief/bytebrief/internal/storage"
	"github.com/bytebrief/bytebrief/pkg/config"
	"github.com/bytebrief/bytebrief/pkg/logging"
)

// Router sets up API routes
type Router struct {
	public     *PublicAPI
	admin      *AdminAPI
	authAPI    *AuthAPI
	upload     *UploadAPI
	middleware *auth.Middleware
	db         *db.DB
	store      cache.Store
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRouter wires the handler groups over the database and cache
func NewRouter(database *db.DB, store cache.Store, images *storage.ImageStore, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)
	posts := db.NewPostRepository(repo)
	categories := db.NewCategoryRepository(repo)
	tags := db.NewTagRepository(repo)
	users := db.NewUserRepository(repo)

	tokens := auth.NewTokenService(&cfg.Auth)
	google := auth.NewGoogleOAuth(&cfg.Auth, cfg.Server.BaseURL, users)

	contentSvc := content.NewService(posts, categories, tags)
	adminSvc := admin.NewService(posts, categories, tags)
	listing := admin.NewListing(posts, store, &cfg.Listing)

	return &Router{
		public:     NewPublicAPI(contentSvc),
		admin:      NewAdminAPI(adminSvc, listing),
		authAPI:    NewAuthAPI(google, tokens, cfg.Auth.SessionTTL, cfg.Auth.CookieSecure),
		upload:     NewUploadAPI(images),
		middleware: auth.NewMiddleware(tokens),
		db:         database,
		store:      store,
		cfg:        cfg,
		logger:     logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Public read API
	public := engine.Group("/api")
	public.Use(RateLimit(r.cfg.Server.RateLimitPerMinute, r.cfg.Server.RateLimitBurst))
	{
		public.GET("/posts", r.public.ListPosts)
		public.GET("/posts/latest", r.public.LatestPosts)
		public.GET("/posts/:slug", r.public.GetPost)
		public.GET("/categories", r.public.ListCategories)
		public.GET("/categories/:slug/posts", r.public.PostsByCategory)
		public.GET("/tags", r.public.ListTags)
		public.GET("/tags/:slug/posts", r.public.PostsByTag)
	}

	// Sign-in flow
	authGroup := engine.Group("/auth")
	{
		authGroup.GET("/google/login", r.authAPI.Login)
		authGroup.GET("/google/callback", r.authAPI.Callback)
		authGroup.GET("/me", r.middleware.Authenticate(), r.authAPI.Me)
		authGroup.POST("/logout", r.authAPI.Logout)
	}

	// Admin console, gated on an admin role
	adminGroup := engine.Group("/admin")
	adminGroup.Use(r.middleware.Authenticate(), r.middleware.RequireAdmin())
	{
		adminGroup.GET("/posts", r.admin.ListPosts)
		adminGroup.GET("/posts/:id", r.admin.GetPost)
		adminGroup.POST("/posts", r.admin.CreatePost)
		adminGroup.PUT("/posts/:id", r.admin.UpdatePost)
		adminGroup.DELETE("/posts/:id", r.admin.DeletePost)

		adminGroup.POST("/categories", r.admin.CreateCategory)
		adminGroup.PUT("/categories/:id", r.admin.UpdateCategory)
		adminGroup.DELETE("/categories/:id", r.admin.DeleteCategory)

		adminGroup.POST("/tags", r.admin.CreateTag)
		adminGroup.PUT("/tags/:id", r.admin.UpdateTag)
		adminGroup.DELETE("/tags/:id", r.admin.DeleteTag)

		adminGroup.POST("/upload", r.upload.Upload)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := http.StatusOK

	if err := r.db.Health(c.Request.Context()); err != nil {
		r.logger.Warn("database health check failed", zap.Error(err))
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "bytebrief-api",
	})
}
