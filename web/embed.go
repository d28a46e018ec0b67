// Package web contiene el front end estático que sirve la API en "/".
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Static devuelve el sistema de archivos con index.html, app.js y styles.css en la raíz.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic("web: subdirectorio static: " + err.Error())
	}
	return sub
}
