package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var viewsFS embed.FS

var pagesTmpl *template.Template

// loadTemplatesFromFS loads page templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	pagesTmpl, err = template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads embedded page templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// Route is one entry of the route index.
type Route struct {
	Path        string
	Description string
}

type HomeData struct {
	Routes []Route
	// Example range paths rendered as links.
	ExampleStart string
	ExampleEnd   string
}

func RenderHome(w io.Writer, data *HomeData) error {
	if pagesTmpl == nil {
		return errors.New("home template not loaded: call views.LoadTemplates during startup")
	}
	return pagesTmpl.ExecuteTemplate(w, "home.html", data)
}

func RenderAbout(w io.Writer) error {
	if pagesTmpl == nil {
		return errors.New("about template not loaded: call views.LoadTemplates during startup")
	}
	return pagesTmpl.ExecuteTemplate(w, "about.html", nil)
}
