// internal/app/features/auditlog/handler.go
package auditlog

import (
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"go.uber.org/zap"
)

// Handler serves the audit log. Store is nil when audit events are not
// persisted, and the page says so.
type Handler struct {
	Store  *audit.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler constructs the audit log handler over store.
func NewHandler(store *audit.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Log:    logger,
		ErrLog: errLog,
	}
}
