// Package web holds the HTML presentation of the prediction form.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

const (
	LayoutWide    = "wide"
	LayoutCompact = "compact"
)

// Templates parses the embedded page templates. funcs must provide "count".
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

// ValidLayout reports whether name is a known layout.
func ValidLayout(name string) bool {
	return name == LayoutWide || name == LayoutCompact
}
