package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

// Mensajes de acuse para update y delete.
const (
	MsgUserUpdated = "Usuario actualizado"
	MsgUserDeleted = "Usuario eliminado"
)

// PasswordHasher puerto de hashing de contraseñas (lo implementa pkg/password).
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// UserUseCase aplica reglas de negocio para usuarios: existencia, email único y hashing.
// Las entradas llegan ya validadas por la capa de validación.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher PasswordHasher
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia y el hasher.
func NewUserUseCase(repo repository.UserRepository, hasher PasswordHasher) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher}
}

// List devuelve todos los usuarios ordenados por id descendente.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID. Devuelve domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Create crea un usuario: verifica email único, hashea la contraseña y persiste.
// La respuesta refleja la petición; solo el id proviene del store.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	rol := entity.RoleUser
	if in.Rol != nil {
		rol = *in.Rol
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	user := &entity.User{
		Nombre:       in.Nombre,
		Email:        in.Email,
		PasswordHash: hash,
		Rol:          rol,
		Activo:       activo,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &dto.UserResponse{
		ID:     user.ID,
		Nombre: in.Nombre,
		Email:  in.Email,
		Rol:    rol,
		Activo: activo,
	}, nil
}

// Update aplica una actualización parcial: solo cambian los campos enviados.
// El email se revalida únicamente si cambia respecto al actual.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.MessageResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && *in.Email != current.Email {
		other, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	patch := entity.UserPatch{
		Nombre: in.Nombre,
		Email:  in.Email,
		Rol:    in.Rol,
		Activo: in.Activo,
	}
	if in.Password != nil {
		hash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	if patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: MsgUserUpdated}, nil
}

// Delete elimina (borrado físico) un usuario. Devuelve domain.ErrUserNotFound si no borró filas.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: MsgUserDeleted}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	created, updated := u.CreatedAt, u.UpdatedAt
	return &dto.UserResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}
