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

	"github.com/jhoicas/promo-tracker/internal/application/usecase"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/csvsource"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/promo-tracker/internal/infrastructure/pdf"
	"github.com/jhoicas/promo-tracker/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/promo-tracker/internal/interfaces/http"
	"github.com/jhoicas/promo-tracker/pkg/config"
	"github.com/jhoicas/promo-tracker/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	eventRepo := postgres.NewEventRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	csvReader, err := csvsource.NewReader(cfg.Import.LegacyCharset)
	if err != nil {
		log.Fatal().Err(err).Msg("lector CSV")
	}

	eventUC := usecase.NewEventUseCase(txRunner, eventRepo, excel.CatalogReader{}, log)
	salesUC := usecase.NewSalesUseCase(saleRepo, csvReader, log)
	reportUC := usecase.NewReportUseCase(eventRepo, saleRepo, infrapdf.NewReportPDF(cfg.App.Name), cfg.Report.TopN, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Import.MaxUploadBytes(),
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Promo Tracker API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		EventUC:  eventUC,
		SalesUC:  salesUC,
		ReportUC: reportUC,
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
