package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sipahq/sipa-api/internal/application/auth"
	"github.com/sipahq/sipa-api/internal/application/project"
	"github.com/sipahq/sipa-api/internal/application/usecase"
	"github.com/sipahq/sipa-api/internal/infrastructure/email"
	"github.com/sipahq/sipa-api/internal/infrastructure/postgres"
	httpRouter "github.com/sipahq/sipa-api/internal/interfaces/http"
	"github.com/sipahq/sipa-api/pkg/config"
	"github.com/sipahq/sipa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewUserProfileRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	teamRepo := postgres.NewProjectTeamMemberRepository(pool)

	notifier := email.NewSMTPNotifier(cfg.SMTP, log)

	// Cada caso de uso serializa su propia fuente con un mutex interno, así
	// que cada uno recibe un *rand.Rand independiente.
	authUC := auth.NewAuthUseCase(userRepo, notifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, rand.New(rand.NewSource(time.Now().UnixNano())), log)

	projectUC := project.NewProjectService(
		projectRepo, orgRepo, userRepo, profileRepo, teamRepo,
		authUC, notifier, rand.New(rand.NewSource(time.Now().UnixNano())), log,
	)
	userUC := usecase.NewUserUseCase(userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SIPA API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ProjectUC: projectUC,
		UserUC:    userUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
