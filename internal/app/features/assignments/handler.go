// internal/app/features/assignments/handler.go
package assignments

import (
	"github.com/dalemusser/learnadmin/internal/app/api/backend"
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"go.uber.org/zap"
)

// Handler serves assignment pages and submission grading.
type Handler struct {
	API    *backend.Backend
	Act    *actions.Runner
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(api *backend.Backend, act *actions.Runner, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, Act: act, ErrLog: errLog, Log: logger}
}
