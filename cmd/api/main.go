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

	"github.com/jhoicas/invoice-studio/internal/application/invoice"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/capture"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoice-studio/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/render"
	httpRouter "github.com/jhoicas/invoice-studio/internal/interfaces/http"
	"github.com/jhoicas/invoice-studio/pkg/config"
	"github.com/jhoicas/invoice-studio/pkg/logger"
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
		Msg("iniciando aplicación")

	logo, logoMIME, err := render.LoadLogo(cfg.Business.LogoPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Business.LogoPath).Msg("logo no disponible, se omite")
	}
	seller := entity.BusinessProfile{
		Name:          cfg.Business.Name,
		Address:       cfg.Business.Address,
		Phone:         cfg.Business.Phone,
		InvoiceNumber: cfg.Business.InvoiceNumber,
		DueText:       cfg.Business.DueText,
		Logo:          logo,
		LogoMIME:      logoMIME,
	}

	renderer, err := render.NewRenderer(cfg.Export.Filename)
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas HTML")
	}

	draftRepo := memory.NewDraftRepository()
	draftUC := invoice.NewDraftUseCase(draftRepo, invoice.DraftConfig{
		TTL:          cfg.Drafts.TTL,
		JanitorEvery: cfg.Drafts.JanitorPeriod,
		Seller:       seller,
	}, log.Zerolog())

	// Exportación: captura con Chrome headless → página PDF con gofpdf.
	// El navegador arranca en la primera descarga, no aquí.
	rasterizer := capture.NewChromeRasterizer(
		capture.WithChromePath(cfg.Export.ChromePath),
		capture.WithNoSandbox(cfg.Export.NoSandbox),
		capture.WithAutoDownload(cfg.Export.AutoDownload),
		capture.WithViewport(int64(cfg.Export.ViewportWidth), int64(cfg.Export.ViewportHeight)),
		capture.WithDeviceScale(cfg.Export.DeviceScale),
	)
	defer rasterizer.Close()

	exportUC := invoice.NewExportUseCase(
		draftUC,
		renderer,
		rasterizer,
		infrapdf.NewImageDocumentAssembler(cfg.Export.PageSize, "Invoice "+seller.InvoiceNumber),
		infrapdf.NewMarotoPDFGenerator(),
		invoice.ExportConfig{
			Timeout:  cfg.Export.Timeout,
			Filename: cfg.Export.Filename,
		},
		log.Zerolog(),
	)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go draftUC.RunJanitor(janitorCtx)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// La descarga espera a la captura; dejar margen sobre EXPORT_TIMEOUT.
		WriteTimeout: cfg.Export.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Invoice Studio API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "drafts": draftRepo.Count()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Drafts:   draftUC,
		Export:   exportUC,
		Renderer: renderer,
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
