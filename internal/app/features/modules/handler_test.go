package modules_test

import (
	"net/http"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/features/modules"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/toast"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*modules.Handler, *testutil.FakeBackend, *auth.SessionManager) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return modules.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb, sm
}

func TestServeList_FiltersByCourse(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/course", testutil.Courses())
	fb.Reply(http.MethodGet, "/modules", testutil.Modules())

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/modules?course=c1", testutil.AdminUser())
	h.ServeList(rec, req)

	call, ok := fb.Last(http.MethodGet, "/modules")
	if !ok {
		t.Fatal("modules not requested")
	}
	if got := call.Query.Get("courseId"); got != "c1" {
		t.Errorf("courseId = %q, want c1", got)
	}
}

func TestHandleCreate_AppendsWhenOrderBlank(t *testing.T) {
	h, fb, sm := newTestHandler(t)
	fb.Reply(http.MethodGet, "/modules", testutil.Modules())
	fb.Reply(http.MethodPost, "/modules", models.Module{ID: "m3"})

	form := url.Values{"course": {"c1"}, "title": {"Concurrency"}}
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/modules", form, testutil.AdminUser()))

	rec.AssertRedirect(t, "/modules?course=c1")
	call, ok := fb.Last(http.MethodPost, "/modules")
	if !ok {
		t.Fatal("create not sent")
	}
	var body models.ModuleInput
	if err := call.DecodeBody(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Order != 3 || body.CourseID != "c1" {
		t.Errorf("body = %+v, want order 3 in c1", body)
	}
	toasts := testutil.Toasts(sm, rec.ResponseRecorder)
	if len(toasts) != 1 || toasts[0].Message != "Module created." {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestHandleCreate_RequiresCourse(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/course", testutil.Courses())

	rec := testutil.NewRecorder()
	req := testutil.NewFormRequest("/modules", url.Values{"title": {"Orphan"}}, testutil.AdminUser())
	h.HandleCreate(rec, req)

	if n := fb.Count(http.MethodPost, "/modules"); n != 0 {
		t.Errorf("backend called %d times", n)
	}
}

func TestHandleMove_SwapsNeighbours(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/modules", testutil.Modules())
	fb.Reply(http.MethodPatch, "/modules/{id}", nil)

	form := url.Values{"course": {"c1"}, "dir": {"down"}}
	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/modules/m1/move", form, testutil.AdminUser()), "id", "m1")
	h.HandleMove(rec, req)

	rec.AssertRedirect(t, "/modules?course=c1")
	for id, want := range map[string]int{"m1": 2, "m2": 1} {
		call, ok := fb.Last(http.MethodPatch, "/modules/"+id)
		if !ok {
			t.Fatalf("no reorder for %s", id)
		}
		var body map[string]int
		if err := call.DecodeBody(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["order"] != want {
			t.Errorf("%s order = %d, want %d", id, body["order"], want)
		}
	}
}

func TestHandleMove_RejectedMoveToasts(t *testing.T) {
	tests := []struct {
		name string
		id   string
		dir  string
		want string
	}{
		{"first module up", "m1", "up", "Module is already at that end of the course."},
		{"unknown direction", "m1", "sideways", "Choose up or down to move a module."},
		{"missing direction", "m2", "", "Choose up or down to move a module."},
		{"module from another course", "m9", "down", "Module not found in this course."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, fb, sm := newTestHandler(t)
			fb.Reply(http.MethodGet, "/modules", testutil.Modules())

			form := url.Values{"course": {"c1"}, "dir": {tc.dir}}
			rec := testutil.NewRecorder()
			req := testutil.WithChiURLParam(testutil.NewFormRequest("/modules/"+tc.id+"/move", form, testutil.AdminUser()), "id", tc.id)
			h.HandleMove(rec, req)

			if n := fb.Count(http.MethodPatch, "/modules/m1") + fb.Count(http.MethodPatch, "/modules/m2"); n != 0 {
				t.Errorf("reorder sent %d times", n)
			}
			toasts := testutil.Toasts(sm, rec.ResponseRecorder)
			if len(toasts) != 1 || toasts[0].Kind != toast.KindError || toasts[0].Message != tc.want {
				t.Errorf("toasts = %+v, want %q", toasts, tc.want)
			}
		})
	}
}

func TestHandleDelete_ReturnsToCourse(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodDelete, "/modules/{id}", nil)

	form := url.Values{"course": {"c1"}}
	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/modules/m2/delete", form, testutil.AdminUser()), "id", "m2")
	h.HandleDelete(rec, req)

	rec.AssertRedirect(t, "/modules?course=c1")
	if fb.Count(http.MethodDelete, "/modules/m2") != 1 {
		t.Error("delete not sent")
	}
}
