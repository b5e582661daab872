package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/tracking"
)

// SeguimientoHandler maneja el ciclo de vida de seguimientos de empresas.
type SeguimientoHandler struct {
	uc *tracking.SeguimientoUseCase
}

// NewSeguimientoHandler construye el handler de seguimientos.
func NewSeguimientoHandler(uc *tracking.SeguimientoUseCase) *SeguimientoHandler {
	return &SeguimientoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear seguimiento
// @Description  Crea un seguimiento EN_PROCESO para el vendedor autenticado.
// @Tags         seguimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSeguimientoRequest  true  "datos del seguimiento"
// @Success      201   {object}  dto.SeguimientoResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/seguimientos [post]
func (h *SeguimientoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSeguimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener seguimiento por ID
// @Tags         seguimientos
// @Produce      json
// @Param        id  path  string  true  "Seguimiento ID"
// @Success      200  {object}  dto.SeguimientoResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seguimientos/{id} [get]
func (h *SeguimientoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Update godoc
// @Summary      Actualizar seguimiento (parcial)
// @Description  Solo seguimientos EN_PROCESO admiten cambios; el dueño nunca cambia.
// @Tags         seguimientos
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Seguimiento ID"
// @Param        body  body  dto.UpdateSeguimientoRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.SeguimientoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/seguimientos/{id} [put]
func (h *SeguimientoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSeguimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), GetUserID(c), GetRole(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Finalize godoc
// @Summary      Concretar seguimiento
// @Description  Transición EN_PROCESO → CONCRETADO; fija la fecha de cierre.
// @Tags         seguimientos
// @Produce      json
// @Param        id  path  string  true  "Seguimiento ID"
// @Success      200  {object}  dto.SeguimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/seguimientos/{id}/finalizar [post]
func (h *SeguimientoHandler) Finalize(c *fiber.Ctx) error {
	out, err := h.uc.Finalize(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Cancel godoc
// @Summary      Cancelar seguimiento
// @Description  Transición EN_PROCESO → NO_CONCRETADO; fija la fecha de cierre.
// @Tags         seguimientos
// @Produce      json
// @Param        id  path  string  true  "Seguimiento ID"
// @Success      200  {object}  dto.SeguimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/seguimientos/{id}/cancelar [post]
func (h *SeguimientoHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Search godoc
// @Summary      Buscar seguimientos
// @Description  Busca por empresa, teléfono o paquete. Un vendedor solo ve los
// suyos; lider y admin pueden filtrar por owner_id o ver todos.
// @Tags         seguimientos
// @Produce      json
// @Param        q         query  string  false  "texto a buscar"
// @Param        owner_id  query  string  false  "filtrar por dueño (solo lider/admin)"
// @Param        limit     query  int     false  "tamaño de página (default 20)"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {object}  dto.SeguimientoListResponse
// @Router       /api/seguimientos [get]
func (h *SeguimientoHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.uc.Search(GetUserID(c), GetRole(c), c.Query("owner_id"), c.Query("q"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Delete godoc
// @Summary      Eliminar seguimiento
// @Description  Solo admin. Falla con 409 si algún reporte lo referencia.
// @Tags         seguimientos
// @Param        id  path  string  true  "Seguimiento ID"
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/seguimientos/{id} [delete]
func (h *SeguimientoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
