// internal/app/features/dashboard/handler.go
package dashboard

import (
	"github.com/dalemusser/learnadmin/internal/app/api/backend"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"go.uber.org/zap"
)

// Handler serves the landing page every role sees after sign-in.
type Handler struct {
	API *backend.Backend
	Act *actions.Runner
	Log *zap.Logger
}

func NewHandler(api *backend.Backend, act *actions.Runner, logger *zap.Logger) *Handler {
	return &Handler{API: api, Act: act, Log: logger}
}
