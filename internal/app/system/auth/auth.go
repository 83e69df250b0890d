// Package auth manages the signed admin session.
//
// The backend issues a bearer token at /admin/login. The dashboard keeps
// that token under the "adminToken" session key and the admin profile
// (id, name, email and role from models.Admin) under "adminData". Every
// request passes through LoadSessionUser, which restores both into the
// request context; the guards below read only from the context.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session keys shared with the rest of the dashboard.
const (
	TokenKey = "adminToken"
	DataKey  = "adminData"
)

// SessionUser is the signed-in admin as seen by handlers.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string // normalized
	Token string
}

// sessionProfile is the part of models.Admin kept in the cookie. Browsers
// cap cookies at 4096 bytes, so nothing unbounded goes in here.
type sessionProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// blockKey derives the AES-256 key that encrypts the cookie, so the backend
// token is not readable by whoever holds the cookie.
func blockKey(sessionKey string) []byte {
	sum := sha256.Sum256([]byte("learnadmin-session-block:" + sessionKey))
	return sum[:]
}

// IsSuperAdmin reports whether the user holds the top role.
func (u *SessionUser) IsSuperAdmin() bool {
	return u != nil && u.Role == models.RoleSuperAdmin
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the admin injected by LoadSessionUser.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// Token returns the backend bearer token for the current request, or "".
func Token(r *http.Request) string {
	if u, ok := CurrentUser(r); ok {
		return u.Token
	}
	return ""
}

// WithTestUser injects u into the request context, bypassing the cookie.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// SessionManager owns the cookie store and the guards built on it.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. sessionKey signs
// the cookie (and, hashed, encrypts it) and must be at least 32 characters in production; maxAge of 0
// yields a browser-session cookie.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "learnadmin-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey), blockKey(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// GetSession returns the named session. On a decode failure (rotated key,
// tampered cookie) it returns a fresh session together with the error so
// callers can log and continue.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SignIn stores the backend token and admin profile in the session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, token string, admin models.Admin) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.logSessionErr(err, "sign in")
	}
	raw, err := json.Marshal(sessionProfile{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
		Role:  permissions.Normalize(admin.Role),
	})
	if err != nil {
		return fmt.Errorf("encode admin data: %w", err)
	}
	sess.Values[TokenKey] = token
	sess.Values[DataKey] = string(raw)
	return sess.Save(r, w)
}

// SignOut clears both session keys. The cookie itself is kept so a toast
// queued afterwards in the same request still reaches the login page.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.logSessionErr(err, "sign out")
	}
	delete(sess.Values, TokenKey)
	delete(sess.Values, DataKey)
	return sess.Save(r, w)
}

// LoadSessionUser injects the admin into the request context when the
// session carries both a token and decodable admin data.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.GetSession(r)
		if err != nil {
			sm.logSessionErr(err, "load")
			next.ServeHTTP(w, r)
			return
		}
		token, _ := sess.Values[TokenKey].(string)
		raw, _ := sess.Values[DataKey].(string)
		if token == "" || raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		var admin sessionProfile
		if err := json.Unmarshal([]byte(raw), &admin); err != nil {
			sm.log.Warn("adminData in session is not valid JSON", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, withUser(r, &SessionUser{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  permissions.Normalize(admin.Role),
			Token: token,
		}))
	})
}

// RequireSignedIn ensures a user is in context. If not:
//   - HTMX: HX-Redirect to /login?return=... with 401
//   - HTML: 303 to /login?return=...
//   - API:  plain 401
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		denyUnauthenticated(w, r)
	})
}

// RequireRole admits users whose normalized role is one of allowed.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[permissions.Normalize(role)] = struct{}{}
	}
	return sm.guard(func(u *SessionUser) bool {
		_, ok := set[u.Role]
		return ok
	})
}

// RequireRoute admits users whose role may open route per the permission table.
func (sm *SessionManager) RequireRoute(route permissions.Route) func(http.Handler) http.Handler {
	return sm.guard(func(u *SessionUser) bool {
		return permissions.CanAccess(u.Role, route)
	})
}

func (sm *SessionManager) guard(allow func(*SessionUser) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				denyUnauthenticated(w, r)
				return
			}
			if !allow(u) {
				denyForbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	ret := "/login?return=" + url.QueryEscape(r.URL.RequestURI())
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func denyForbidden(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/forbidden")
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}
	http.Error(w, "forbidden", http.StatusForbidden)
}

func (sm *SessionManager) logSessionErr(err error, op string) {
	var scErr securecookie.Error
	if errors.As(err, &scErr) && scErr.IsDecode() {
		sm.log.Warn("session cookie invalid, using fresh session", zap.String("op", op), zap.Error(err))
		return
	}
	sm.log.Error("session store error", zap.String("op", op), zap.Error(err))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func wantsHTML(r *http.Request) bool {
	return isHTMX(r) || strings.Contains(r.Header.Get("Accept"), "text/html")
}
