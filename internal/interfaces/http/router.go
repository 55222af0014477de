package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promo-tracker/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName  string
	EventUC  *usecase.EventUseCase
	SalesUC  *usecase.SalesUseCase
	ReportUC *usecase.ReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Eventos y reportes
	events := api.Group("/events")
	eventHandler := NewEventHandler(deps.EventUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	events.Post("/", eventHandler.Create)
	events.Get("/", eventHandler.List)
	events.Get("/:id/report.pdf", reportHandler.PDF)
	events.Get("/:id/report", reportHandler.Get)
	events.Get("/:id", eventHandler.GetByID)
	events.Delete("/:id", eventHandler.Delete)

	// Ventas diarias
	sales := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	sales.Post("/import", salesHandler.Import)
	sales.Get("/", salesHandler.List)
	sales.Get("/layers", salesHandler.Layers)
	sales.Get("/days", salesHandler.Days)
	sales.Delete("/", salesHandler.DeleteAll)
	sales.Delete("/:date", salesHandler.DeleteByDay)
}
