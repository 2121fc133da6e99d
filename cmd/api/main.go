package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nicklcsdev/inventario-lite/internal/application/auth"
	"github.com/nicklcsdev/inventario-lite/internal/application/ports"
	"github.com/nicklcsdev/inventario-lite/internal/application/usecase"
	infraai "github.com/nicklcsdev/inventario-lite/internal/infrastructure/ai"
	inframail "github.com/nicklcsdev/inventario-lite/internal/infrastructure/mail"
	infrapdf "github.com/nicklcsdev/inventario-lite/internal/infrastructure/pdf"
	"github.com/nicklcsdev/inventario-lite/internal/infrastructure/postgres"
	httpRouter "github.com/nicklcsdev/inventario-lite/internal/interfaces/http"
	"github.com/nicklcsdev/inventario-lite/pkg/config"
	"github.com/nicklcsdev/inventario-lite/pkg/logger"
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

	empresaRepo := postgres.NewEmpresaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	empresaUC := usecase.NewEmpresaUseCase(empresaRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo, empresaRepo)

	groqSvc := infraai.NewGroqService(cfg.AI.GroqAPIKey, cfg.AI.GroqModel, cfg.AI.GroqWhisperModel)
	aiUC := usecase.NewAIUseCase(groqSvc)

	// Correo opcional: sin SMTP_HOST el endpoint de envío responde 503.
	var mailer ports.ReporteMailer
	if sender, err := inframail.NewGomailSender(cfg.SMTP); err == nil {
		mailer = sender
	} else {
		log.Warn().Err(err).Msg("envío de reportes por correo deshabilitado")
	}
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reporteUC := usecase.NewReporteUseCase(productoRepo, empresaRepo, pdfGenerator, mailer)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	// El middleware entra en pánico si el spec no existe, así que solo se
	// registra cuando el archivo está presente en el despliegue.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Inventario Lite API",
		}))
	} else {
		log.Warn().Str("file", swaggerSpec).Msg("swagger.json no encontrado, UI de docs deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EmpresaUC:  empresaUC,
		ProductoUC: productoUC,
		AIUC:       aiUC,
		ReporteUC:  reporteUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
