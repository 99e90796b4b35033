package api

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"hpa": func(f float64) string {
			return fmt.Sprintf("%.1f", f)
		},
		"signed": func(f float64) string {
			return fmt.Sprintf("%+.2f", f)
		},
		"clock": func(t time.Time) string {
			return t.Format("15:04")
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
