package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/application/usecase"
)

// ReportHandler expone el reporte de un evento.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte del evento a una fecha
// @Description  Sin fecha usa el último día de venta cargado. Sin datos responde {"has_data": false}.
// @Tags         reports
// @Produce      json
// @Param        id    path   string  true   "ID del evento"
// @Param        date  query  string  false  "Fecha de reporte (YYYY-MM-DD)"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/report [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	if !out.HasData {
		return c.JSON(dto.NoDataResponse{HasData: false})
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar el reporte en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del evento"
// @Param        date  query  string  false  "Fecha de reporte (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/report.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	out, rep, err := h.uc.PDF(c.UserContext(), c.Params("id"), c.Query("date"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte_%s.pdf"`, rep.ReportDate))
	return c.Send(out)
}
