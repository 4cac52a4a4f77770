package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lumenhq/lumen-api/internal/config"
	"github.com/lumenhq/lumen-api/internal/handler"
	"github.com/lumenhq/lumen-api/internal/middleware"
	"github.com/lumenhq/lumen-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	CourseHandler     *handler.CourseHandler
	EnrollmentHandler *handler.EnrollmentHandler
	AssignmentHandler *handler.AssignmentHandler
	UserHandler       *handler.UserHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	SearchHandler     *handler.SearchHandler
	UploadHandler     *handler.UploadHandler
	RealtimeHandler   *handler.RealtimeHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	teacherGuard := middleware.RequireRole("teacher")
	studentGuard := middleware.RequireRole("student")

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 30, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.CourseHandler != nil {
		public := api.Group("/courses")
		teacherOnly := api.Group("/courses", jwtMiddleware, teacherGuard)
		deps.CourseHandler.Register(public, teacherOnly)
	}

	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(api.Group("/enrollments", jwtMiddleware))
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", jwtMiddleware)
		teacherOnly := api.Group("/assignments", jwtMiddleware, teacherGuard)
		studentOnly := api.Group("/assignments", jwtMiddleware, studentGuard)
		deps.AssignmentHandler.Register(assignments, teacherOnly, studentOnly)
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users", jwtMiddleware))
	}

	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.Register(api.Group("/analytics", jwtMiddleware))
	}

	if deps.SearchHandler != nil {
		deps.SearchHandler.Register(api.Group("/searches", jwtMiddleware))
	}

	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(api.Group("/uploads", jwtMiddleware))
	}

	if deps.RealtimeHandler != nil {
		deps.RealtimeHandler.Register(api.Group("/realtime", jwtMiddleware))
	}
}
