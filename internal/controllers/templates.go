package controllers

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
