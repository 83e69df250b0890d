// internal/app/features/enrollments/templates.go
package enrollments

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "enrollments",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
