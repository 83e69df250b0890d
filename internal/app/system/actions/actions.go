// Package actions runs dashboard mutations and turns their outcome into
// toasts, audit events and redirects.
//
// A handler builds a Spec and passes the backend call as fn:
//
//	h.Act.Run(w, r, actions.Spec{
//		Success:  "Course deleted.",
//		Failure:  "Failed to delete course.",
//		Redirect: "/courses",
//		Audit:    &actions.Audit{Event: audit.EventCourseDeleted, Resource: "course", ResourceID: id},
//	}, func(ctx context.Context) error {
//		return h.API.Courses.Delete(ctx, token, id)
//	})
//
// Plain form posts get a session toast and a 303. HTMX requests that name an
// HX-Target stay on the page: the toast travels in HX-Trigger together with
// Spec.Events so tables can refresh themselves.
package actions

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/auditlog"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/toast"
	"go.uber.org/zap"
)

// SessionExpiredMessage is shown after a backend 401 ends the session.
const SessionExpiredMessage = "Your session has expired. Please sign in again."

// Sessions is the part of the session manager actions need.
type Sessions interface {
	toast.SessionStore
	SignOut(w http.ResponseWriter, r *http.Request) error
}

// Audit describes the audit event recorded for a mutation.
type Audit struct {
	Event      string
	Resource   string
	ResourceID string
	Details    map[string]string
}

// Spec describes one mutation's feedback.
type Spec struct {
	Success  string   // toast on success
	Failure  string   // fallback message when the error carries none
	Redirect string   // 303 target on success
	Back     string   // 303 target on failure; defaults to Redirect
	Events   []string // extra HX-Trigger events on HTMX success
	Audit    *Audit

	// Messages maps errors fn may return (matched with errors.Is) to the
	// toast shown for them.
	Messages map[error]string
}

// message is the toast text for a failed mutation.
func (s Spec) message(err error) string {
	for target, msg := range s.Messages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return apiclient.ErrorMessage(err, s.Failure)
}

// Runner carries the dependencies every mutation needs.
type Runner struct {
	Sessions Sessions
	AuditLog *auditlog.Logger
	Log      *zap.Logger
}

// New builds a Runner.
func New(sessions Sessions, auditLog *auditlog.Logger, logger *zap.Logger) *Runner {
	return &Runner{Sessions: sessions, AuditLog: auditLog, Log: logger}
}

// Run executes fn under a medium timeout and writes the response. It returns
// fn's error so callers can branch, but the response is already written.
func (a *Runner) Run(w http.ResponseWriter, r *http.Request, spec Spec, fn func(ctx context.Context) error) error {
	if err := a.exec(r, spec, fn); err != nil {
		a.fail(w, r, err, spec.message(err), back(spec))
		return err
	}
	a.succeed(w, r, spec)
	return nil
}

// Submit runs a form mutation. On success, or when the backend reports the
// session expired, the response is written and handled is true. Otherwise
// nothing is written and msg is the error to show above the re-rendered
// form, so the admin keeps what they typed.
func (a *Runner) Submit(w http.ResponseWriter, r *http.Request, spec Spec, fn func(ctx context.Context) error) (msg string, handled bool) {
	err := a.exec(r, spec, fn)
	if err == nil {
		a.succeed(w, r, spec)
		return "", true
	}
	if a.Expired(w, r, err) {
		return "", true
	}
	msg = spec.message(err)
	a.Log.Info("form rejected",
		zap.String("path", r.URL.Path),
		zap.String("message", msg),
		zap.Error(err))
	return msg, false
}

func (a *Runner) exec(r *http.Request, spec Spec, fn func(ctx context.Context) error) error {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), a.Log, "action")
	defer cancel()

	err := fn(ctx)

	if spec.Audit != nil {
		a.AuditLog.Action(r.Context(), r, spec.Audit.Event, spec.Audit.Resource, spec.Audit.ResourceID, err, spec.Audit.Details)
	}
	return err
}

func (a *Runner) succeed(w http.ResponseWriter, r *http.Request, spec Spec) {
	t := toast.Success(spec.Success)
	if stayOnPage(r) {
		toast.Trigger(w, t, spec.Events...)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.push(w, r, t)
	redirect(w, r, spec.Redirect)
}

// Fail reports err to the admin: an HX-Trigger toast for HTMX requests,
// otherwise a session toast and a 303 to back. A backend 401 is handled by
// Expired instead.
func (a *Runner) Fail(w http.ResponseWriter, r *http.Request, err error, fallback, back string) {
	a.fail(w, r, err, apiclient.ErrorMessage(err, fallback), back)
}

// Reject reports input the handler refused before calling the backend.
func (a *Runner) Reject(w http.ResponseWriter, r *http.Request, msg, back string) {
	a.Log.Info("action rejected",
		zap.String("path", r.URL.Path),
		zap.String("message", msg))
	a.report(w, r, msg, back)
}

func (a *Runner) fail(w http.ResponseWriter, r *http.Request, err error, msg, back string) {
	if a.Expired(w, r, err) {
		return
	}
	a.Log.Warn("action failed",
		zap.String("path", r.URL.Path),
		zap.String("message", msg),
		zap.Error(err))
	a.report(w, r, msg, back)
}

func (a *Runner) report(w http.ResponseWriter, r *http.Request, msg, back string) {
	if stayOnPage(r) {
		toast.Trigger(w, toast.Error(msg))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.push(w, r, toast.Error(msg))
	redirect(w, r, back)
}

// Expired handles a backend 401: it clears the session, queues a toast and
// sends the browser to /login. It reports whether err was a 401.
func (a *Runner) Expired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	a.AuditLog.SessionExpired(r.Context(), r)
	if a.Sessions != nil {
		if serr := a.Sessions.SignOut(w, r); serr != nil {
			a.Log.Warn("sign out after 401 failed", zap.Error(serr))
		}
	}
	a.push(w, r, toast.Error(SessionExpiredMessage))
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return true
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// ReadFailed handles a failed backend read while building a page. A 401 is
// handled by Expired and reported as done; otherwise the failure is logged
// and the message to show as an error toast on the page is returned.
func (a *Runner) ReadFailed(w http.ResponseWriter, r *http.Request, err error, fallback string) (msg string, done bool) {
	if a.Expired(w, r, err) {
		return "", true
	}
	msg = apiclient.ErrorMessage(err, fallback)
	a.Log.Warn("backend read failed",
		zap.String("path", r.URL.Path),
		zap.String("message", msg),
		zap.Error(err))
	return msg, false
}

// Exported records a spreadsheet download in the audit log. err is the
// write error, if any.
func (a *Runner) Exported(r *http.Request, resource string, rows int, err error) {
	a.AuditLog.Action(context.WithoutCancel(r.Context()), r, audit.EventDataExported, resource, "", err,
		map[string]string{"rows": strconv.Itoa(rows)})
	if err != nil {
		a.Log.Error("export failed", zap.String("resource", resource), zap.Error(err))
	}
}

// Notify queues t for the next page render.
func (a *Runner) Notify(w http.ResponseWriter, r *http.Request, t toast.Toast) {
	a.push(w, r, t)
}

func (a *Runner) push(w http.ResponseWriter, r *http.Request, t toast.Toast) {
	if a.Sessions == nil || t.Message == "" {
		return
	}
	if err := toast.Push(w, r, a.Sessions, t); err != nil {
		a.Log.Warn("queue toast failed", zap.Error(err))
	}
}

func back(spec Spec) string {
	if spec.Back != "" {
		return spec.Back
	}
	return spec.Redirect
}

func stayOnPage(r *http.Request) bool {
	return r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") != ""
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if target == "" {
		target = "/dashboard"
	}
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
