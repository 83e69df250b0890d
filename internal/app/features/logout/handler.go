// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auditlog"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/toast"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		AuditLog:   audit,
	}
}

// ServeLogout handles POST /logout (and GET for plain links).
// The backend token is stateless, so signing out only clears the session.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		h.AuditLog.Logout(r.Context(), r)
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	if err := toast.Push(w, r, h.SessionMgr, toast.Info("You have been signed out.")); err != nil {
		h.Log.Warn("logout: queue toast", zap.Error(err))
	}

	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
