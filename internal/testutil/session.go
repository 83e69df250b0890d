package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/toast"
	"go.uber.org/zap"
)

const testSessionKey = "test-session-key-0123456789abcdef0123456789"

// SessionManager returns a cookie session manager with a fixed test key.
func SessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(testSessionKey, "learnadmin-test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// Actions returns an action runner bound to sm with audit logging disabled.
func Actions(sm *auth.SessionManager) *actions.Runner {
	return actions.New(sm, nil, zap.NewNop())
}

// Toasts replays the cookies set on rec into a fresh request and pops the
// toasts queued there.
func Toasts(sm *auth.SessionManager, rec *httptest.ResponseRecorder) []toast.Toast {
	req := ReplayCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	return toast.Pop(httptest.NewRecorder(), req, sm)
}

// ReplayCookies adds the cookies rec set to req. When a cookie was set more
// than once only the last value is kept, as a browser would.
func ReplayCookies(req *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	last := map[string]*http.Cookie{}
	var order []string
	for _, c := range rec.Result().Cookies() {
		if _, seen := last[c.Name]; !seen {
			order = append(order, c.Name)
		}
		last[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(last[name])
	}
	return req
}
