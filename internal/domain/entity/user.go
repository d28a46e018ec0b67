package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un registro de la tabla usuarios.
type User struct {
	ID           int64
	Nombre       string
	Email        string
	PasswordHash string // bcrypt, nunca sale en respuestas
	Rol          string // admin, user
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch actualización parcial: solo los campos no nil se modifican.
type UserPatch struct {
	Nombre       *string
	Email        *string
	PasswordHash *string
	Rol          *string
	Activo       *bool
}

// IsEmpty indica que no hay ningún campo para actualizar.
func (p UserPatch) IsEmpty() bool {
	return p.Nombre == nil && p.Email == nil && p.PasswordHash == nil && p.Rol == nil && p.Activo == nil
}

// Apply copia los campos presentes del patch sobre u.
func (p UserPatch) Apply(u *User) {
	if p.Nombre != nil {
		u.Nombre = *p.Nombre
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Rol != nil {
		u.Rol = *p.Rol
	}
	if p.Activo != nil {
		u.Activo = *p.Activo
	}
}
