package repository

import (
	"context"

	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Las lecturas devuelven (nil, nil) cuando no hay fila. Create asigna user.ID y devuelve
// domain.ErrEmailAlreadyExists si el store rechaza el email duplicado. Update y Delete devuelven
// domain.ErrUserNotFound cuando ninguna fila fue afectada.
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, id int64, patch entity.UserPatch) error
	Delete(ctx context.Context, id int64) error
	// Ping verifica la conectividad con el store (health check).
	Ping(ctx context.Context) error
}
