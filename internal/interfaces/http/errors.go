package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// respondError traduce los errores de dominio a códigos HTTP. Los errores de
// validación viajan como mapa campo→mensaje con estado 422 para que el
// cliente pinte cada mensaje junto al campo o sección correspondiente.
func respondError(c *fiber.Ctx, err error) error {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code:   "VALIDATION",
			Fields: verrs,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrEstadoTerminal):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ESTADO_TERMINAL", Message: err.Error()})
	case errors.Is(err, domain.ErrSeguimientoEnUso):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SEGUIMIENTO_EN_USO", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// badBody respuesta estándar cuando el body no parsea.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
