package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata" // Europe/Madrid disponible aunque la imagen no traiga zoneinfo

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/swaggo/swag"

	"github.com/jhoicas/inventario-ledger/docs"
	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	infrapdf "github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/store"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
	"github.com/jhoicas/inventario-ledger/pkg/telemetry"
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

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, docs.SwaggerInfo.Version)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	clock, err := inventory.NewClock(cfg.Ledger.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del ledger")
	}

	stores, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer stores.Close()

	seeder := inventory.NewSeeder(stores.Tx, clock, cfg.Seed.Password)
	if cfg.Seed.OnStartup {
		status, err := seeder.SeedIfEmpty(ctx)
		switch {
		case err != nil:
			log.Fatal().Err(err).Msg("carga inicial")
		case status == inventory.SeedPartial:
			log.Warn().Msg("almacén con datos parciales: no se cargan datos iniciales")
		default:
			log.Info().Str("status", string(status)).Msg("carga inicial")
		}
	}

	rules := inventory.MovementRules{AllowNegativeStock: cfg.Ledger.AllowNegativeStock}
	itemUC := inventory.NewItemUseCase(stores.Tx, stores.Items, clock, rules)
	movementUC := inventory.NewMovementUseCase(stores.Tx, stores.Items, stores.Movements, clock, rules)
	reportUC := report.NewMovementReportUseCase(
		stores.Items, stores.Movements, clock,
		infrapdf.NewMovementReportGenerator(), xmlexport.NewMovementExporter(),
	)
	authUC := auth.NewAuthUseCase(stores.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.AccessLog(log.Zerolog()))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Inventario Ledger API",
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:     itemUC,
		MovementUC: movementUC,
		ReportUC:   reportUC,
		Seeder:     seeder,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log.Zerolog(),
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
