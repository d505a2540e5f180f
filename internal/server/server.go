package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/example/synapz/internal/auth"
	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/logger"
	"github.com/example/synapz/internal/service"
)

// Config holds the HTTP layer settings
type Config struct {
	CORSOrigins  []string
	AdminSecret  string
	SecureCookie bool
	// Requests per second and burst allowed per IP on /api/auth
	AuthRate  rate.Limit
	AuthBurst int
}

// Services are the application services exposed over HTTP
type Services struct {
	Store    *database.Store
	Tokens   *auth.TokenManager
	Accounts *service.AccountService
	Facts    *service.FactService
	Activity *service.ActivityService
	Reviews  *service.ReviewService
	Admin    *service.AdminService
}

// Server is the gin based HTTP API
type Server struct {
	Services
	cfg    Config
	log    *logger.Logger
	engine *gin.Engine
}

// New builds the router with all middleware and routes
func New(cfg Config, svc Services, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.AuthRate == 0 {
		cfg.AuthRate = rate.Every(time.Second)
	}
	if cfg.AuthBurst == 0 {
		cfg.AuthBurst = 10
	}
	s := &Server{Services: svc, cfg: cfg, log: log.With("component", "http")}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", adminSecretHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := s.cfg.CORSOrigins
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// Credentials cannot be combined with a literal wildcard
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.log))
	router.Use(cors.New(s.corsConfig()))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthz", s.health)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(newIPRateLimiter(s.cfg.AuthRate, s.cfg.AuthBurst).middleware())
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
		authGroup.POST("/logout", s.logout)
	}
	api.GET("/auth/me", s.requireAuth(), s.me)

	api.GET("/facts", s.optionalAuth(), s.listFacts)

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("")
	protected.Use(s.requireAuth())
	{
		protected.POST("/facts", s.createFact)
		protected.POST("/facts/:id/save", s.toggleSave)

		protected.GET("/users/me", s.profile)
		protected.PUT("/users/me/notifications", s.updateNotifications)
		protected.GET("/users/saved", s.listSaved)
		protected.GET("/users/activity", s.listActivity)
		protected.POST("/users/activity", s.recordActivity)

		protected.GET("/review", s.reviewQueue)
		protected.POST("/review", s.submitReview)
	}

	// ===============
	// || Admin     ||
	// ===============
	admin := api.Group("/admin")
	admin.Use(s.requireAdmin())
	{
		admin.GET("/generate", s.generateUsage)
		admin.POST("/generate", s.generate)
		admin.GET("/seed", s.seedStatus)
		admin.POST("/seed", s.seed)
	}

	router.NoRoute(func(c *gin.Context) {
		respondStatus(c, http.StatusNotFound, "Not found")
	})
	return router
}

func (s *Server) health(c *gin.Context) {
	if err := s.Store.Ping(c.Request.Context()); err != nil {
		s.log.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	respondOK(c, gin.H{"status": "ok"})
}
