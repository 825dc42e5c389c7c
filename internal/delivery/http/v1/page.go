package v1

import (
	"embed"
	"html/template"
)

const pageTemplateName = "index.html"

//go:embed templates/*.html
var templatesFS embed.FS

// PageTemplate parses the page that hosts the widget. It panics if the
// embedded templates are malformed.
func PageTemplate() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}
