package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/report"
)

// ReporteHandler maneja los reportes de venta y sus cinco secciones.
type ReporteHandler struct {
	uc *report.ReporteUseCase
}

// NewReporteHandler construye el handler de reportes.
func NewReporteHandler(uc *report.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reporte de venta
// @Description  Valida todas las secciones y persiste el reporte completo en
// una transacción: o se guarda todo o no se guarda nada.
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveReporteRequest  true  "reporte completo"
// @Success      201   {object}  dto.ReporteResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/reportes [post]
func (h *ReporteHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveReporteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar reporte de venta
// @Description  Reemplaza secciones y referencias por completo, también en una
// sola transacción. El dueño y la fecha de creación se preservan.
// @Tags         reportes
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Reporte ID"
// @Param        body  body  dto.SaveReporteRequest  true  "reporte completo"
// @Success      200   {object}  dto.ReporteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/reportes/{id} [put]
func (h *ReporteHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveReporteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetByID godoc
// @Summary      Obtener reporte por ID
// @Description  Devuelve el reporte con sus secciones y seguimientos hidratados.
// @Tags         reportes
// @Produce      json
// @Param        id  path  string  true  "Reporte ID"
// @Success      200  {object}  dto.ReporteResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/{id} [get]
func (h *ReporteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// List godoc
// @Summary      Listar reportes
// @Description  Resúmenes con conteos por sección. Un vendedor solo ve los
// suyos; lider y admin pueden filtrar por owner_id o ver todos.
// @Tags         reportes
// @Produce      json
// @Param        owner_id  query  string  false  "filtrar por dueño (solo lider/admin)"
// @Param        limit     query  int     false  "tamaño de página (default 20)"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ReporteListResponse
// @Router       /api/reportes [get]
func (h *ReporteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.uc.List(GetUserID(c), GetRole(c), c.Query("owner_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Delete godoc
// @Summary      Eliminar reporte
// @Description  Solo el dueño o un admin. Las secciones caen en cascada.
// @Tags         reportes
// @Param        id  path  string  true  "Reporte ID"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reportes/{id} [delete]
func (h *ReporteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetUserID(c), GetRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
