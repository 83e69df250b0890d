// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"github.com/dalemusser/learnadmin/internal/app/api/backend"
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/system/auditlog"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/inputval"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Handler serves the sign-in form and exchanges credentials with the
// backend's /admin/login.
type Handler struct {
	API        *backend.Backend
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	AuditLog   *auditlog.Logger
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(api *backend.Backend, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter,
	audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		API:        api,
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		AuditLog:   audit,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginFormData struct {
	formutil.Base
	Email     string
	ReturnURL string
}

type loginInput struct {
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"required" label:"Password"`
}

// Generic message for every backend rejection that does not carry one.
const invalidCredentials = "Invalid email or password."

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, "", "", query.Get(r, "return"))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := loginInput{
		Email:    formutil.Trimmed(r, "email"),
		Password: r.FormValue("password"),
	}
	ret := formutil.Trimmed(r, "return")

	if res := inputval.Validate(in); res.HasErrors() {
		h.render(w, r, res.First(), in.Email, ret)
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, in.Email); !ok {
			h.AuditLog.LoginRateLimited(r.Context(), r, in.Email)
			h.render(w, r, reason, in.Email, ret)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin login")
	defer cancel()

	result, err := h.API.Admins.Login(ctx, in.Email, in.Password)
	if err != nil {
		msg := loginErrorMessage(err)
		h.Log.Info("login rejected", zap.String("email", in.Email), zap.Error(err))
		h.AuditLog.LoginFailed(r.Context(), r, in.Email, msg)
		h.render(w, r, msg, in.Email, ret)
		return
	}

	if result.Token == "" {
		h.Log.Error("login succeeded without a token", zap.String("email", in.Email))
		h.AuditLog.LoginFailed(r.Context(), r, in.Email, "no token in response")
		h.render(w, r, "Sign-in failed. Please try again.", in.Email, ret)
		return
	}

	role, err := permissions.Parse(result.Admin.Role)
	if err != nil {
		h.AuditLog.LoginFailed(r.Context(), r, in.Email, "role not allowed: "+result.Admin.Role)
		h.render(w, r, "Your account does not have dashboard access.", in.Email, ret)
		return
	}
	result.Admin.Role = role
	if result.Admin.Email == "" {
		result.Admin.Email = in.Email
	}

	if err := h.SessionMgr.SignIn(w, r, result.Token, result.Admin); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", in.Email))
		h.render(w, r, "Unable to create session. Please try again.", in.Email, ret)
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(in.Email)
	}
	h.AuditLog.LoginSuccess(context.WithoutCancel(r.Context()), r, result.Admin)

	dest := urlutil.SafeReturn(ret, "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// loginErrorMessage prefers the backend's wording but never exposes
// transport details on the sign-in page.
func loginErrorMessage(err error) string {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.Status == 0 {
		return "The server could not be reached. Please try again."
	}
	return apiclient.ErrorMessage(err, invalidCredentials)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	data := loginFormData{Email: email, ReturnURL: ret}
	formutil.SetBase(&data.Base, w, r, "Sign in", "/login")
	data.SetError(msg)
	templates.Render(w, r, "login", data)
}
