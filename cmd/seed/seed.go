package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/application/validation"
	"github.com/jhoicas/usuarios-api/internal/domain"
)

// Usuarios de demo cuando no se pasa CSV.
var demoRows = [][]string{
	{"Administrador", "admin@example.com", "admin123", "admin", "true"},
	{"Ana Gil", "ana@example.com", "secret1", "user", "true"},
	{"Luis Pérez", "luis@example.com", "secret2", "user", "false"},
}

// seedResult resumen del proceso.
type seedResult struct {
	Created int
	Skipped int // email ya registrado
	Invalid int
}

// readRows lee el CSV (nombre,email,password[,rol[,activo]]). Con latin1 decodifica ISO-8859-1.
// Una primera fila cuyo segundo campo sea "email" se trata como encabezado.
func readRows(r io.Reader, latin1 bool) ([][]string, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 1 && strings.EqualFold(strings.TrimSpace(rows[0][1]), "email") {
		rows = rows[1:]
	}
	return rows, nil
}

// rowToRequest arma el cuerpo JSON de la fila y lo pasa por las mismas reglas que la API.
func rowToRequest(val *validation.Validator, row []string) (dto.CreateUserRequest, error) {
	var in dto.CreateUserRequest
	if len(row) < 3 {
		return in, fmt.Errorf("se esperaban al menos 3 columnas, hay %d", len(row))
	}
	body := map[string]any{
		"nombre":   row[0],
		"email":    row[1],
		"password": row[2],
	}
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		body["rol"] = strings.TrimSpace(row[3])
	}
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		activo, err := strconv.ParseBool(strings.TrimSpace(row[4]))
		if err != nil {
			return in, fmt.Errorf("activo inválido %q", row[4])
		}
		body["activo"] = activo
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return in, err
	}
	if err := val.DecodeAndValidate(raw, &in); err != nil {
		return in, err
	}
	return in, nil
}

// seed crea cada fila mediante el caso de uso; los emails existentes se omiten sin error.
func seed(ctx context.Context, uc *usecase.UserUseCase, val *validation.Validator, rows [][]string, report func(line int, email string, err error)) (seedResult, error) {
	var res seedResult
	for i, row := range rows {
		line := i + 1
		in, err := rowToRequest(val, row)
		if err != nil {
			res.Invalid++
			report(line, "", err)
			continue
		}
		_, err = uc.Create(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			res.Skipped++
			report(line, in.Email, err)
		default:
			return res, fmt.Errorf("fila %d (%s): %w", line, in.Email, err)
		}
	}
	return res, nil
}
