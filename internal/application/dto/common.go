package dto

import "github.com/jhoicas/usuarios-api/internal/domain"

// ErrorResponse cuerpo de error HTTP. Details solo viaja en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// MessageResponse acuse simple para update y delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse salida de /health.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	DB      string `json:"db,omitempty"`
	Message string `json:"message,omitempty"`
}
