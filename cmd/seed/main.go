// seed crea usuarios iniciales a través del mismo caso de uso que la API (hash bcrypt incluido).
//
// Uso: go run ./cmd/seed [-latin1] [usuarios.csv]
// Sin CSV crea un administrador y dos usuarios de demo. Columnas: nombre,email,password[,rol[,activo]].
// Usa la misma configuración que la API (DB_DRIVER, DB_HOST, ...).
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/application/validation"
	"github.com/jhoicas/usuarios-api/internal/infrastructure/store"
	"github.com/jhoicas/usuarios-api/pkg/config"
	"github.com/jhoicas/usuarios-api/pkg/logger"
	"github.com/jhoicas/usuarios-api/pkg/password"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	rows := demoRows
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("abrir CSV")
		}
		rows, err = readRows(f, *latin1)
		_ = f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("leer CSV")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer st.Close()

	uc := usecase.NewUserUseCase(st.Users, password.NewBcryptHasher(cfg.Security.BcryptCost))
	res, err := seed(ctx, uc, validation.New(), rows, func(line int, email string, err error) {
		log.Warn().Err(err).Int("fila", line).Str("email", email).Msg("fila omitida")
	})
	if err != nil {
		log.Error().Err(err).Msg("seed interrumpido")
		st.Close()
		os.Exit(1)
	}
	log.Info().
		Int("creados", res.Created).
		Int("existentes", res.Skipped).
		Int("invalidos", res.Invalid).
		Msg("seed completado")
}
