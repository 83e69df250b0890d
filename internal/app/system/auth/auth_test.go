package auth_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "x", "", 0, false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(okHandler())

	req := httptest.NewRequest("GET", "/courses?status=draft", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?return=") {
		t.Errorf("expected redirect to /login, got %q", location)
	}
	if !strings.Contains(location, "%2Fcourses") {
		t.Errorf("expected return param to carry original path, got %q", location)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(okHandler())

	req := httptest.NewRequest("GET", "/uploads/image", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(okHandler())

	req := httptest.NewRequest("GET", "/reviews", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestRequireRoute(t *testing.T) {
	sm := newTestSessionManager(t)

	tests := []struct {
		name     string
		role     string
		route    permissions.Route
		wantCode int
		wantLoc  string
	}{
		{"moderator allowed on reviews", models.RoleModerator, permissions.Reviews, http.StatusOK, ""},
		{"moderator denied on enrollments", models.RoleModerator, permissions.Enrollments, http.StatusSeeOther, "/forbidden"},
		{"admin denied on audit log", models.RoleAdmin, permissions.AuditLog, http.StatusSeeOther, "/forbidden"},
		{"super admin allowed on admins", models.RoleSuperAdmin, permissions.Admins, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := sm.RequireRoute(tt.route)(okHandler())
			req := httptest.NewRequest("GET", "/"+string(tt.route), nil)
			req.Header.Set("Accept", "text/html")
			req = auth.WithTestUser(req, &auth.SessionUser{ID: "a1", Name: "A", Role: tt.role, Token: "t"})
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantLoc != "" && rec.Header().Get("Location") != tt.wantLoc {
				t.Errorf("Location = %q, want %q", rec.Header().Get("Location"), tt.wantLoc)
			}
		})
	}
}

func TestRequireRole_WrongRole_API_Returns403(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireRole("super-admin")(okHandler())

	req := httptest.NewRequest("POST", "/admins", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "a1", Role: models.RoleAdmin})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRole_NormalizesAllowedRoles(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireRole("Super-Admin")(okHandler())

	req := httptest.NewRequest("GET", "/admins", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "a1", Role: models.RoleSuperAdmin})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestSignIn_LoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	admin := models.Admin{ID: "a42", Name: "Ada", Email: "ada@example.com", Role: "Super-Admin"}
	if err := sm.SignIn(rec, req, "tok-123", admin); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	next := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), next)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.Token != "tok-123" || got.ID != "a42" || got.Email != "ada@example.com" {
		t.Errorf("unexpected user %+v", got)
	}
	if got.Role != models.RoleSuperAdmin {
		t.Errorf("Role = %q, want normalized super_admin", got.Role)
	}
}

func TestLoadSessionUser_NoCookie_NoUser(t *testing.T) {
	sm := newTestSessionManager(t)
	called := false
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := auth.CurrentUser(r); ok {
			t.Error("expected no user")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if !called {
		t.Error("next handler not called")
	}
}

func TestToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if auth.Token(req) != "" {
		t.Error("expected empty token without user")
	}
	req = auth.WithTestUser(req, &auth.SessionUser{Token: "abc"})
	if auth.Token(req) != "abc" {
		t.Errorf("Token = %q, want abc", auth.Token(req))
	}
}

func signInCookies(t *testing.T, sm *auth.SessionManager, admin models.Admin) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := sm.SignIn(rec, httptest.NewRequest("POST", "/login", nil), "tok-secret-123", admin); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	return cookies
}

func TestSignIn_CookieIsEncrypted(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signInCookies(t, sm, models.Admin{ID: "a1", Email: "ada@example.com", Role: "admin"})

	outer, err := base64.URLEncoding.DecodeString(cookies[0].Value)
	if err != nil {
		t.Fatalf("decode cookie: %v", err)
	}
	parts := strings.SplitN(string(outer), "|", 3)
	if len(parts) != 3 {
		t.Fatalf("unexpected cookie layout %q", outer)
	}
	payload, err := base64.URLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	for _, secret := range []string{"tok-secret-123", "ada@example.com"} {
		if strings.Contains(string(payload), secret) {
			t.Errorf("cookie payload exposes %q", secret)
		}
	}
}

func TestSignIn_LongProfileFieldsStayOutOfCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	admin := models.Admin{
		ID:     "a1",
		Name:   "Ada",
		Email:  "ada@example.com",
		Role:   "admin",
		Avatar: "https://cdn.example.com/avatars/" + strings.Repeat("x", 6000) + ".png",
	}
	cookies := signInCookies(t, sm, admin)
	if n := len(cookies[0].Value); n > 4096 {
		t.Errorf("cookie is %d bytes, browsers reject more than 4096", n)
	}

	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	next := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), next)
	if got == nil || got.Name != "Ada" || got.Token != "tok-secret-123" {
		t.Errorf("unexpected user %+v", got)
	}
}
