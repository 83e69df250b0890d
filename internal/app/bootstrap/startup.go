// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/learnadmin/internal/app/resources"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup registers the shared templates and starts background workers.
// It runs after ConnectDB and EnsureSchema and before BuildHandler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	if deps.Pruner != nil {
		deps.Pruner.Start()
	}
	return nil
}
