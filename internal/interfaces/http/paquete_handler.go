package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
)

// PaqueteHandler maneja el catálogo de paquetes de venta.
type PaqueteHandler struct {
	uc *catalog.PaqueteUseCase
}

// NewPaqueteHandler construye el handler de paquetes.
func NewPaqueteHandler(uc *catalog.PaqueteUseCase) *PaqueteHandler {
	return &PaqueteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear paquete
// @Tags         paquetes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaqueteRequest  true  "name, price"
// @Success      201   {object}  dto.PaqueteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/paquetes [post]
func (h *PaqueteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaqueteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener paquete por ID
// @Tags         paquetes
// @Produce      json
// @Param        id  path  string  true  "Paquete ID"
// @Success      200  {object}  dto.PaqueteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/paquetes/{id} [get]
func (h *PaqueteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paquete no encontrado"})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// Update godoc
// @Summary      Actualizar paquete (parcial)
// @Tags         paquetes
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "Paquete ID"
// @Param        body  body  dto.UpdatePaqueteRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.PaqueteResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/paquetes/{id} [put]
func (h *PaqueteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePaqueteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paquete no encontrado"})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// List godoc
// @Summary      Listar paquetes
// @Tags         paquetes
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.PaqueteListResponse
// @Router       /api/paquetes [get]
func (h *PaqueteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
