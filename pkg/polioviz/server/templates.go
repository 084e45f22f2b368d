package server

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type option struct {
	Code     string
	Name     string
	Selected bool
}

type indexView struct {
	Title       string
	Placeholder string
	Message     string
	Version     uint64
	Width       int
	Height      int
	Selected    bool
	Countries   []option
}
