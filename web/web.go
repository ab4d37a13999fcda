// Package web holds the page templates and static assets, embedded into the binary.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed template/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page template with the given helper functions.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "template/*.html")
}

// Static returns the asset tree served under /static.
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
