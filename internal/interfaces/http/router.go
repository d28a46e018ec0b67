package http

import (
	"io/fs"
	nethttp "net/http"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/usuarios-api/docs"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/application/validation"
	"github.com/jhoicas/usuarios-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UserUC    *usecase.UserUseCase
	Validator *validation.Validator
	Store     Pinger
	Log       *logger.Logger
	DocsFile  string // swagger.json para la UI en /docs; vacío = sin UI
	WebFS     fs.FS  // front end servido en /; nil = deshabilitado
}

// Router registra las rutas de la API, la documentación y el front end (en ese orden).
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.Store, deps.Log)
	app.Get("/health", health.Check)

	api := app.Group("/api")

	usuarios := api.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC, deps.Validator)
	usuarios.Get("/", userHandler.List)
	usuarios.Post("/", userHandler.Create)
	// health antes de /:id para que "health" no se interprete como id
	usuarios.Get("/health", health.Check)
	usuarios.Get("/:id", userHandler.GetByID)
	usuarios.Put("/:id", userHandler.Update)
	usuarios.Delete("/:id", userHandler.Delete)

	registerDocs(app, deps.DocsFile, deps.Log)

	if deps.WebFS != nil {
		app.Use(filesystem.New(filesystem.Config{
			Root:   nethttp.FS(deps.WebFS),
			Index:  "index.html",
			Browse: false,
		}))
	}
}

// registerDocs expone la especificación en /openapi.json y, si el archivo existe, Swagger UI en /docs.
func registerDocs(app *fiber.App, docsFile string, log *logger.Logger) {
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	if docsFile == "" {
		return
	}
	// swagger.New entra en pánico si el archivo no existe
	if _, err := os.Stat(docsFile); err != nil {
		log.Warn().Err(err).Str("file", docsFile).Msg("Swagger UI deshabilitado")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: docsFile,
		Path:     "docs",
		Title:    "Usuarios API",
	}))
}
