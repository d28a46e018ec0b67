// Package memory implementa el puerto UserRepository en memoria del proceso (demos locales y tests).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda usuarios en un mapa protegido por mutex. El índice por email hace de
// constraint UNIQUE: el chequeo y la inserción ocurren bajo el mismo lock. Igual que la
// collation _ci de MySQL, el índice no distingue mayúsculas.
type UserRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*entity.User
	byEmail map[string]int64
	now     func() time.Time
}

// NewUserRepository construye un store vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{
		byID:    make(map[int64]*entity.User),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

// List devuelve copias ordenadas por id descendente.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetByEmail devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

// Create asigna un id nuevo (nunca reutilizado) y los timestamps.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[emailKey(user.Email)]; taken {
		return domain.ErrEmailAlreadyExists
	}
	r.nextID++
	now := r.now()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	r.byID[cp.ID] = &cp
	r.byEmail[emailKey(cp.Email)] = cp.ID
	return nil
}

// Update aplica el patch sobre la fila existente.
func (r *UserRepo) Update(ctx context.Context, id int64, patch entity.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if patch.Email != nil {
		key := emailKey(*patch.Email)
		if owner, taken := r.byEmail[key]; taken && owner != id {
			return domain.ErrEmailAlreadyExists
		}
		delete(r.byEmail, emailKey(u.Email))
		r.byEmail[key] = id
	}
	patch.Apply(u)
	u.UpdatedAt = r.now()
	return nil
}

// Delete borra la fila; domain.ErrUserNotFound si no existía.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, emailKey(u.Email))
	delete(r.byID, id)
	return nil
}

// Ping siempre responde: no hay conexión que verificar.
func (r *UserRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func emailKey(email string) string {
	return strings.ToLower(email)
}
