package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrNoFieldsToUpdate   = errors.New("no hay campos para actualizar")
	ErrInvalidBody        = errors.New("cuerpo inválido")
)

// FieldError describe una violación de validación sobre un campo concreto.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa TODAS las violaciones detectadas en una petición, en orden de declaración.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye el error a partir de la lista de campos.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Validación fallida"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "Validación fallida: " + strings.Join(parts, "; ")
}

// Has indica si el campo tiene al menos una violación.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
