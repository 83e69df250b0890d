package admins_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/features/admins"
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*admins.Handler, *testutil.FakeBackend, *auth.SessionManager) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return admins.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb, sm
}

func TestHandleCreate(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodPost, "/admin", testutil.Admins()[2])

	rec := testutil.NewRecorder()
	form := url.Values{
		"name": {"  Ada   Byron "}, "email": {"ADA@Example.com"},
		"password": {"correct horse"}, "confirm": {"correct horse"}, "role": {"Moderator"},
	}
	h.HandleCreate(rec, testutil.NewFormRequest("/admins", form, testutil.SuperAdminUser()))

	rec.AssertRedirect(t, "/admins")
	call, ok := fb.Last(http.MethodPost, "/admin")
	if !ok {
		t.Fatal("create not sent")
	}
	var body models.AdminInput
	if err := call.DecodeBody(&body); err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	want := models.AdminInput{Name: "Ada Byron", Email: "ada@example.com", Password: "correct horse", Role: "moderator"}
	if body != want {
		t.Errorf("body = %+v, want %+v", body, want)
	}
}

func TestHandleCreate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{"mismatch", url.Values{"name": {"A"}, "email": {"a@b.co"}, "password": {"12345678"}, "confirm": {"87654321"}, "role": {"admin"}}, "Passwords do not match."},
		{"short password", url.Values{"name": {"A"}, "email": {"a@b.co"}, "password": {"short"}, "confirm": {"short"}, "role": {"admin"}}, "Password"},
		{"bad role", url.Values{"name": {"A"}, "email": {"a@b.co"}, "password": {"12345678"}, "confirm": {"12345678"}, "role": {"owner"}}, "Role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fb, _ := newTestHandler(t)

			rec := testutil.NewRecorder()
			h.HandleCreate(rec, testutil.NewFormRequest("/admins", tt.form, testutil.SuperAdminUser()))

			if fb.Count(http.MethodPost, "/admin") != 0 {
				t.Error("invalid admin was created")
			}
			body := rec.Body.String()
			if !strings.Contains(body, tt.wantMsg) {
				t.Errorf("body missing %q", tt.wantMsg)
			}
			if strings.Contains(body, tt.form.Get("password")) {
				t.Error("password echoed back into the form")
			}
		})
	}
}

func TestHandleRole(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		role     string
		wantSent bool
		wantMsg  string
	}{
		{"promote", "adm-mod", "admin", true, "Role updated."},
		{"self", "adm-super", "admin", false, "You can't change your own role. Ask another super admin."},
		{"unknown role", "adm-mod", "owner", false, "Unknown role."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fb, sm := newTestHandler(t)
			fb.Reply(http.MethodGet, "/admin", testutil.Admins())
			fb.Reply(http.MethodPatch, "/admin/{id}", nil)

			rec := testutil.NewRecorder()
			req := testutil.NewFormRequest("/admins/"+tt.id+"/role", url.Values{"role": {tt.role}}, testutil.SuperAdminUser())
			h.HandleRole(rec, testutil.WithChiURLParam(req, "id", tt.id))

			rec.AssertRedirect(t, "/admins")
			if got := fb.Count(http.MethodPatch, "/admin/"+tt.id); (got == 1) != tt.wantSent {
				t.Errorf("PATCH count = %d", got)
			}
			toasts := testutil.Toasts(sm, rec.ResponseRecorder)
			if len(toasts) != 1 || toasts[0].Message != tt.wantMsg {
				t.Errorf("toasts = %+v", toasts)
			}
		})
	}
}

func TestHandleDelete_LastSuperAdmin(t *testing.T) {
	h, fb, sm := newTestHandler(t)
	fb.Reply(http.MethodGet, "/admin", []models.Admin{
		{ID: "adm-other", Name: "Other Super", Role: models.RoleSuperAdmin},
		{ID: "adm-admin", Name: "Test Admin", Role: models.RoleAdmin},
	})
	fb.Reply(http.MethodDelete, "/admin/{id}", nil)

	rec := testutil.NewRecorder()
	req := testutil.NewFormRequest("/admins/adm-other/delete", nil, testutil.SuperAdminUser())
	h.HandleDelete(rec, testutil.WithChiURLParam(req, "id", "adm-other"))

	rec.AssertRedirect(t, "/admins")
	if fb.Count(http.MethodDelete, "/admin/adm-other") != 0 {
		t.Error("last super admin was deleted")
	}
	toasts := testutil.Toasts(sm, rec.ResponseRecorder)
	if len(toasts) != 1 || toasts[0].Message != "At least one super admin must remain." {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestServeList_MarksSelf(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/admin", testutil.Admins())

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/admins", testutil.SuperAdminUser()))

	body := rec.Body.String()
	if strings.Count(body, "(you)") != 1 {
		t.Errorf("expected exactly one self marker:\n%s", body)
	}
	if strings.Contains(body, `action="/admins/adm-super/delete"`) {
		t.Error("self row offers delete")
	}
}
