package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promo-tracker/internal/application/dto"
	"github.com/jhoicas/promo-tracker/internal/application/usecase"
)

// SalesHandler maneja la importación y consulta de ventas diarias.
type SalesHandler struct {
	uc *usecase.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Import godoc
// @Summary      Importar export diario de ventas (CSV)
// @Tags         sales
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Export CSV del POS"
// @Success      201  {object}  dto.ImportSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/import [post]
func (h *SalesHandler) Import(c *fiber.Ctx) error {
	data, name, err := readUpload(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo CSV requerido (campo file)"})
	}
	out, err := h.uc.Import(c.UserContext(), bytes.NewReader(data), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        search  query  string  false  "Subcadena de barcode o nombre"
// @Param        layer   query  string  false  "layer1_code exacto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.SalesListResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	in := dto.SalesListRequest{
		PageRequest: dto.PageRequest{
			Limit:  c.QueryInt("limit", 20),
			Offset: c.QueryInt("offset", 0),
		},
		Search: c.Query("search"),
		Layer:  c.Query("layer"),
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Layers godoc
// @Summary      Códigos layer1 disponibles
// @Tags         sales
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/sales/layers [get]
func (h *SalesHandler) Layers(c *fiber.Ctx) error {
	out, err := h.uc.Layers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Days godoc
// @Summary      Días de venta cargados
// @Tags         sales
// @Produce      json
// @Success      200  {array}  dto.SalesDayDTO
// @Router       /api/sales/days [get]
func (h *SalesHandler) Days(c *fiber.Ctx) error {
	out, err := h.uc.Days(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteAll godoc
// @Summary      Eliminar todas las ventas
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.DeleteResult
// @Router       /api/sales [delete]
func (h *SalesHandler) DeleteAll(c *fiber.Ctx) error {
	out, err := h.uc.DeleteAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteByDay godoc
// @Summary      Eliminar las ventas de un día
// @Tags         sales
// @Produce      json
// @Param        date  path  string  true  "Día de venta (YYYY-MM-DD)"
// @Success      200  {object}  dto.DeleteResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/{date} [delete]
func (h *SalesHandler) DeleteByDay(c *fiber.Ctx) error {
	out, err := h.uc.DeleteByDay(c.UserContext(), c.Params("date"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
