package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/pkg/logger"
)

// Mensajes visibles para el cliente.
const (
	msgValidation  = "Validación fallida"
	msgInvalidBody = "Cuerpo JSON inválido"
	msgNoFields    = "No hay campos para actualizar"
	msgNotFound    = "Usuario no encontrado"
	msgEmailExists = "El email ya está registrado"
	msgInternal    = "Error interno"
)

// ErrorHandler traduce los errores devueltos por los handlers a status + ErrorResponse.
// Los errores no clasificados se registran y se responden como 500 sin filtrar el detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: msgValidation, Details: verr.Fields}
	case errors.Is(err, domain.ErrInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_BODY", Message: msgInvalidBody}
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "NO_FIELDS", Message: msgNoFields}
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: msgNotFound}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: msgEmailExists}
	case errors.As(err, &ferr):
		return ferr.Code, dto.ErrorResponse{Code: "HTTP_ERROR", Message: ferr.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: msgInternal}
	}
}
