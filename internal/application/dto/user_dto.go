package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Nombre   string  `json:"nombre" validate:"required,min=2,max=100" normalize:"trim,nfc"`
	Email    string  `json:"email" validate:"required,email,max=150" normalize:"trim"`
	Password string  `json:"password" validate:"required,min=6,max=100"`
	Rol      *string `json:"rol" validate:"omitempty,oneof=admin user"`
	Activo   *bool   `json:"activo"`
}

// UpdateUserRequest entrada para actualización parcial: nil = campo no enviado.
type UpdateUserRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=2,max=100" normalize:"trim,nfc"`
	Email    *string `json:"email" validate:"omitempty,email,max=150" normalize:"trim"`
	Password *string `json:"password" validate:"omitempty,min=6,max=100"`
	Rol      *string `json:"rol" validate:"omitempty,oneof=admin user"`
	Activo   *bool   `json:"activo"`
}

// UserResponse salida de un usuario (sin password_hash).
// Los timestamps se omiten en la respuesta de creación, que no relee el store.
type UserResponse struct {
	ID        int64      `json:"id"`
	Nombre    string     `json:"nombre"`
	Email     string     `json:"email"`
	Rol       string     `json:"rol"`
	Activo    bool       `json:"activo"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
