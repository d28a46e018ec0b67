package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/application/validation"
)

// UserHandler maneja las peticiones HTTP para usuarios.
// Los errores se devuelven tal cual; ErrorHandler los traduce a status y cuerpo.
type UserHandler struct {
	uc  *usecase.UserUseCase
	val *validation.Validator
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, val *validation.Validator) *UserHandler {
	return &UserHandler{uc: uc, val: val}
}

// List godoc
// @Summary      Listar usuarios
// @Description  Devuelve todos los usuarios, el más reciente primero. Nunca incluye password_hash.
// @Tags         usuarios
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         usuarios
// @Produce      json
// @Param        id   path      int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Description  rol por defecto "user", activo por defecto true. La contraseña se guarda con bcrypt.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := h.val.DecodeAndValidate(c.Body(), &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (parcial)
// @Description  Solo cambian los campos enviados; un campo enviado vacío se valida igual que uno con valor.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID del usuario"
// @Param        body  body      dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, idErr := validation.ParseID(c.Params("id"))
	var in dto.UpdateUserRequest
	bodyErr := h.val.DecodeAndValidate(c.Body(), &in)
	if err := validation.Merge(idErr, bodyErr); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         usuarios
// @Produce      json
// @Param        id   path      int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := validation.ParseID(c.Params("id"))
	if err != nil {
		return err
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
