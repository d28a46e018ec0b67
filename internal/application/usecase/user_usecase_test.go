package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

// MockUserRepository implementación mock de repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, patch entity.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeHasher evita el coste de bcrypt en tests de reglas de negocio.
type fakeHasher struct{ calls int }

func (h *fakeHasher) Hash(plain string) (string, error) {
	h.calls++
	return "hashed:" + plain, nil
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

var ctx = context.Background()

func existingUser() *entity.User {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &entity.User{
		ID: 5, Nombre: "Ana Gil", Email: "ana@x.com", PasswordHash: "hashed:secret1",
		Rol: entity.RoleUser, Activo: true, CreatedAt: now, UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestList_MantieneOrdenDelStore(t *testing.T) {
	repo := new(MockUserRepository)
	a, b := existingUser(), existingUser()
	a.ID, b.ID = 9, 3
	repo.On("List", ctx).Return([]*entity.User{a, b}, nil)

	out, err := usecase.NewUserUseCase(repo, &fakeHasher{}).List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(9), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
	require.NotNil(t, out[0].CreatedAt)
}

func TestList_VacioDevuelveSliceNoNil(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("List", ctx).Return(nil, nil)

	out, err := usecase.NewUserUseCase(repo, &fakeHasher{}).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, out, "la lista vacía debe serializarse como [] y no null")
	assert.Empty(t, out)
}

func TestGetByID_NoExiste(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", ctx, int64(404)).Return(nil, nil)

	_, err := usecase.NewUserUseCase(repo, &fakeHasher{}).GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByID_ErrorDeStoreSePropaga(t *testing.T) {
	repo := new(MockUserRepository)
	boom := errors.New("conexión rechazada")
	repo.On("GetByID", ctx, int64(1)).Return(nil, boom)

	_, err := usecase.NewUserUseCase(repo, &fakeHasher{}).GetByID(ctx, 1)
	assert.ErrorIs(t, err, boom)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AplicaDefaultsYHashea(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := &fakeHasher{}
	repo.On("GetByEmail", ctx, "ana@x.com").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Nombre == "Ana Gil" && u.PasswordHash == "hashed:secret1" &&
			u.Rol == entity.RoleUser && u.Activo
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = 7
	}).Return(nil)

	out, err := usecase.NewUserUseCase(repo, hasher).Create(ctx, dto.CreateUserRequest{
		Nombre: "Ana Gil", Email: "ana@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), out.ID, "el id lo asigna el store")
	assert.Equal(t, "user", out.Rol)
	assert.True(t, out.Activo)
	assert.Nil(t, out.CreatedAt, "create no relee el store")
	assert.Equal(t, 1, hasher.calls)
	repo.AssertExpectations(t)
}

func TestCreate_RespetaRolYActivo(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", ctx, "root@x.com").Return(nil, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	out, err := usecase.NewUserUseCase(repo, &fakeHasher{}).Create(ctx, dto.CreateUserRequest{
		Nombre: "Root", Email: "root@x.com", Password: "secret1",
		Rol: strPtr("admin"), Activo: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Rol)
	assert.False(t, out.Activo)
}

func TestCreate_EmailDuplicado(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := &fakeHasher{}
	repo.On("GetByEmail", ctx, "ana@x.com").Return(existingUser(), nil)

	_, err := usecase.NewUserUseCase(repo, hasher).Create(ctx, dto.CreateUserRequest{
		Nombre: "Otra Ana", Email: "ana@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Zero(t, hasher.calls, "no se hashea si el email ya existe")
}

func TestCreate_CarreraResueltaPorConstraintDelStore(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", ctx, "ana@x.com").Return(nil, nil)
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

	_, err := usecase.NewUserUseCase(repo, &fakeHasher{}).Create(ctx, dto.CreateUserRequest{
		Nombre: "Ana Gil", Email: "ana@x.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_NoExiste(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := usecase.NewUserUseCase(repo, &fakeHasher{}).Update(ctx, 99, dto.UpdateUserRequest{Activo: boolPtr(false)})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_SoloActivoNoTocaOtrosCampos(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", ctx, int64(5)).Return(existingUser(), nil)
	repo.On("Update", ctx, int64(5), entity.UserPatch{Activo: boolPtr(false)}).Return(nil)

	out, err := usecase.NewUserUseCase(repo, &fakeHasher{}).Update(ctx, 5, dto.UpdateUserRequest{Activo: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Usuario actualizado", out.Message)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdate_MismoEmailNoRevalida(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", ctx, int64(5)).Return(existingUser(), nil)
	repo.On("Update", ctx, int64(5), mock.Anything).Return(nil)

	_, err := usecase.NewUserUseCase(repo, &fakeHasher{}).Update(ctx, 5, dto.UpdateUserRequest{Email: strPtr("ana@x.com")})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestUpdate_EmailNuevoEnUso(t *testing.T) {
	repo := new(MockUserRepository)
	other := existingUser()
	other.ID, other.Email = 8, "luis@x.com"
	repo.On("GetByID", ctx, int64(5)).Return(existingUser(), nil)
	repo.On("GetByEmail", ctx, "luis@x.com").Return(other, nil)

	_, err := usecase.NewUserUseCase(repo, &fakeHasher{}).Update(ctx, 5, dto.UpdateUserRequest{Email: strPtr("luis@x.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_SinCampos(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", ctx, int64(5)).Return(existingUser(), nil)

	_, err := usecase.NewUserUseCase(repo, &fakeHasher{}).Update(ctx, 5, dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PasswordSeRehashea(t *testing.T) {
	repo := new(MockUserRepository)
	hasher := &fakeHasher{}
	repo.On("GetByID", ctx, int64(5)).Return(existingUser(), nil)
	repo.On("Update", ctx, int64(5), mock.MatchedBy(func(p entity.UserPatch) bool {
		return p.PasswordHash != nil && *p.PasswordHash == "hashed:nueva-clave" &&
			p.Nombre == nil && p.Email == nil && p.Rol == nil && p.Activo == nil
	})).Return(nil)

	_, err := usecase.NewUserUseCase(repo, hasher).Update(ctx, 5, dto.UpdateUserRequest{Password: strPtr("nueva-clave")})
	require.NoError(t, err)
	assert.Equal(t, 1, hasher.calls)
	repo.AssertExpectations(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_DosVeces(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Delete", ctx, int64(5)).Return(nil).Once()
	repo.On("Delete", ctx, int64(5)).Return(domain.ErrUserNotFound).Once()
	uc := usecase.NewUserUseCase(repo, &fakeHasher{})

	out, err := uc.Delete(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Usuario eliminado", out.Message)

	_, err = uc.Delete(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
