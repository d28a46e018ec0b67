package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, nombre, email, password_hash, rol, activo, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre MySQL.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// List devuelve todos los usuarios, el más reciente primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM usuarios ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM usuarios WHERE email = ? LIMIT 1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Create persiste un nuevo usuario y rellena user.ID con el id autogenerado.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO usuarios (nombre, email, password_hash, rol, activo) VALUES (?, ?, ?, ?, ?)`,
		user.Nombre, user.Email, user.PasswordHash, user.Rol, user.Activo,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

// Update aplica el patch; los campos nil llegan como NULL y COALESCE conserva el valor actual.
// El DSN usa clientFoundRows, así que una fila encontrada sin cambios cuenta como afectada.
func (r *UserRepo) Update(ctx context.Context, id int64, patch entity.UserPatch) error {
	query := `
		UPDATE usuarios SET
			nombre = COALESCE(?, nombre),
			email = COALESCE(?, email),
			password_hash = COALESCE(?, password_hash),
			rol = COALESCE(?, rol),
			activo = COALESCE(?, activo),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullString(patch.Nombre), nullString(patch.Email), nullString(patch.PasswordHash),
		nullString(patch.Rol), nullBool(patch.Activo), id,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return checkAffected(res)
}

// Delete elimina el usuario; ErrUserNotFound si no había fila.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return checkAffected(res)
}

// Ping verifica la conexión con MySQL.
func (r *UserRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*entity.User, error) {
	var u entity.User
	if err := s.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullBool(p *bool) sql.NullBool {
	if p == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *p, Valid: true}
}
