// internal/app/features/auditlog/templates.go
package auditlog

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "auditlog",
		FS:       templatesFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
