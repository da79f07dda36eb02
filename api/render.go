package api

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer serves the embedded HTML templates through echo's Render hook.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded page and partial templates.
func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html", "templates/partials/*.html")),
	}
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func staticAssets() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}
