// Package store elige el adaptador de persistencia según DB_DRIVER y gestiona su ciclo de vida.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/usuarios-api/internal/domain/repository"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/memory"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/mysql"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/usuarios-api/pkg/config"
)

// Store repositorio listo para usar más el cierre de su pool.
type Store struct {
	Users repository.UserRepository
	close func()
}

// Close libera el pool de conexiones (no-op en memoria).
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta con el driver configurado y, si DB_AUTO_MIGRATE está activo, crea la tabla.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		db, err := mysql.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := mysql.EnsureSchema(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Store{Users: mysql.NewUserRepository(db), close: func() { _ = db.Close() }}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Store{Users: postgres.NewUserRepository(pool), close: pool.Close}, nil

	case config.DriverMemory:
		return &Store{Users: memory.NewUserRepository()}, nil

	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}
