// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"plaza/internal/cache"
	"plaza/internal/config"
	"plaza/internal/middleware"
	"plaza/internal/seed"
	"plaza/internal/service"
	"plaza/internal/store"
	"plaza/internal/uploads"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *store.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	users      store.UserStore
	posts      store.PostStore
	engagement store.EngagementStore
	query      store.Query

	userService    *service.UserService
	postService    *service.PostService
	commentService *service.CommentService

	uploads *uploads.Store
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, store.New(), cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the store and Redis
// and optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *store.DB, redisClient *redis.Client) (*Server, error) {
	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)
	engagement := store.NewEngagementStore(db)
	query := store.NewQuery(db)

	uploadStore, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload store init failed: %w", err)
	}

	prom := middleware.InitMetrics("plaza-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		users:          users,
		posts:          posts,
		engagement:     engagement,
		query:          query,
		uploads:        uploadStore,
	}
	server.userService = service.NewUserService(users)
	server.postService = service.NewPostService(posts, query)
	server.commentService = service.NewCommentService(engagement)

	middleware.InitMiddleware(cfg, users)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Distributed tracing
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses. Credentials must be allowed for the session cookie.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Plaza Backend Metrics Dashboard",
	}))

	// Account routes
	users := api.Group("/users")
	users.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/logout", middleware.AuthRequired, s.Logout)
	users.Get("/me", middleware.AuthRequired, s.GetMyProfile)
	users.Delete("/me", middleware.AuthRequired, s.DeleteMyAccount)
	users.Get("/:id", s.GetUserProfile)
	users.Delete("/:id", middleware.AuthRequired, s.DeleteUser)

	// Post routes
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_post"), s.CreatePost)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/like", middleware.AuthRequired, s.ToggleLike)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	// Generic /:id routes (for item detail, update, delete)
	posts.Get("/:id", middleware.AuthRequired, s.GetPost)
	posts.Patch("/:id", middleware.AuthRequired, s.UpdatePost)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	// Comment routes. List and create are keyed by post ID; delete by
	// comment ID. The nested /posts/:id/comments forms above are aliases.
	comments := api.Group("/comments")
	comments.Get("/:id", s.GetComments)
	comments.Post("/:id", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	comments.Delete("/:id", middleware.AuthRequired, s.DeleteComment)
}

// Seed populates the store with demo data. Called once at startup when
// SEED_DEMO is set; never during request handling.
func (s *Server) Seed(ctx context.Context, opts seed.Options) error {
	factory := seed.NewFactory(s.users, s.posts, s.engagement)
	return seed.Run(ctx, middleware.Logger, factory, opts)
}

// Shutdown releases server-held resources after the HTTP listener stops.
func (s *Server) Shutdown(_ context.Context) error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. The data tables live in
// process memory so only Redis availability can degrade readiness, and only
// to "degraded": rate limiting fails open without it.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	overallStatus := "healthy"
	if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"store": "healthy",
			"redis": redisStatus,
		},
		"time": time.Now(),
	})
}
