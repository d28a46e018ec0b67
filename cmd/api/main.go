package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/application/validation"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/usuarios-api/internal/interfaces/http"
	"github.com/jhoicas/usuarios-api/pkg/config"
	"github.com/jhoicas/usuarios-api/pkg/logger"
	"github.com/jhoicas/usuarios-api/pkg/password"
	"github.com/jhoicas/usuarios-api/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer st.Close()

	userUC := usecase.NewUserUseCase(st.Users, password.NewBcryptHasher(cfg.Security.BcryptCost))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(recover.New())
	app.Use(helmet.New(helmet.Config{
		// Swagger UI carga recursos de otro origen
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	deps := httpRouter.RouterDeps{
		UserUC:    userUC,
		Validator: validation.New(),
		Store:     st.Users,
		Log:       log,
	}
	if cfg.HTTP.DocsEnabled {
		// Swagger UI en local: http://localhost:<port>/docs
		deps.DocsFile = cfg.HTTP.DocsFile
	}
	if cfg.HTTP.WebEnabled {
		deps.WebFS = web.Static()
	}
	httpRouter.Router(app, deps)

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
