package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sipahq/sipa-api/internal/application/auth"
	"github.com/sipahq/sipa-api/internal/application/project"
	"github.com/sipahq/sipa-api/internal/application/usecase"
	"github.com/sipahq/sipa-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ProjectUC *project.ProjectService
	UserUC    *usecase.UserUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/restore-password", authHandler.RestorePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Projects (protegido)
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Post("/", RequireRole(entity.RoleConsulta, entity.RoleAdmin), projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Patch("/:id", RequireRole(entity.RoleAdmin), projectHandler.Update)
	projects.Get("/:id/team", projectHandler.GetTeam)

	// Users (protegido, solo ADMIN)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/status", userHandler.UpdateStatus)
}
