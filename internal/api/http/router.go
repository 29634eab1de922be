package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/document-service/internal/api/http/handlers"
	"github.com/spec-kit/document-service/internal/auth"
	"github.com/spec-kit/document-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Documents      *handlers.DocumentsHandler
	Ingestion      *handlers.IngestionHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every protected route declares its
// role allow-list explicitly; RequireRoles with no arguments admits any
// authenticated user.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRoles(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Get("/find", cfg.Users.FindByEmail)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
	users.Patch("/assign-role/:id", cfg.Users.AssignRole)

	docs := app.Group("/documents", cfg.AuthMiddleware.Handle)
	docs.Post("/", auth.RequireRoles(), cfg.Documents.Create)
	docs.Get("/", auth.RequireRoles(), cfg.Documents.List)
	docs.Get("/:id", auth.RequireRoles(), cfg.Documents.Get)
	docs.Put("/:id", auth.RequireRoles(domain.RoleAdmin, domain.RoleEditor), cfg.Documents.Update)
	docs.Delete("/:id", auth.RequireRoles(domain.RoleAdmin), cfg.Documents.Delete)

	ingest := app.Group("/ingestion", cfg.AuthMiddleware.Handle, auth.RequireRoles())
	ingest.Post("/trigger", cfg.Ingestion.Trigger)
	ingest.Get("/status/:id", cfg.Ingestion.Status)
	ingest.Get("/history", cfg.Ingestion.History)
}
