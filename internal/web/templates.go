package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the page templates; each view is a template named
// after it.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
