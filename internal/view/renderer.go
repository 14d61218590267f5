// Package view implements the template-rendering boundary of the
// application: an echo.Renderer backed by html/template, the navigation
// item builder and the one-shot flash notice cookie. Handlers only ever
// hand it a view name and a data bag.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer satisfies echo.Renderer. Templates are parsed once at startup
// from the embedded filesystem and addressed by file name, e.g.
// "login.html".
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses every embedded template. It fails only on a broken
// template, which is a build-time defect, so main treats the error as
// fatal.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: t}, nil
}

// Render writes the named template with the given data bag.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
