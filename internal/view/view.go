// Package view holds the minimal HTML layer.  Templates are embedded and
// exposed through Echo's Renderer interface; pages carry only the variant
// id, counters and an optional error string, since presentation itself is
// not this application's business.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer adapts html/template to echo.Renderer.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates once at startup.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
