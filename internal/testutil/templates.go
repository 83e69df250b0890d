package testutil

import (
	"fmt"

	"github.com/dalemusser/learnadmin/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// BootTemplates compiles the shared layout and every feature set registered
// by the test binary's imports, then installs the engine for Render. Call it
// from TestMain; it panics when a template fails to parse.
func BootTemplates() {
	resources.LoadSharedTemplates()
	eng := templates.New(false)
	if err := eng.Boot(zap.NewNop()); err != nil {
		panic(fmt.Sprintf("boot templates: %v", err))
	}
	templates.UseEngine(eng, zap.NewNop())
}
