package assignments_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/features/assignments"
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/toast"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*assignments.Handler, *testutil.FakeBackend, *auth.SessionManager) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return assignments.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb, sm
}

func TestHandleCreate_ParsesDueDate(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodPost, "/assignment", models.Assignment{ID: "a9"})

	form := url.Values{
		"course":    {"c1"},
		"title":     {"Ship it"},
		"due_date":  {"2026-04-01"},
		"max_score": {"20"},
		"status":    {"active"},
	}
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/assignments", form, testutil.AdminUser()))

	rec.AssertRedirect(t, "/assignments")
	call, ok := fb.Last(http.MethodPost, "/assignment")
	if !ok {
		t.Fatal("create not sent")
	}
	var body models.AssignmentInput
	if err := call.DecodeBody(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := time.Date(2026, 4, 1, 23, 59, 59, 0, time.UTC)
	if body.DueDate == nil || !body.DueDate.Equal(want) {
		t.Errorf("due = %v, want %v", body.DueDate, want)
	}
	if body.MaxScore != 20 || body.CourseID != "c1" {
		t.Errorf("body = %+v", body)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	tests := []struct {
		name, field, value string
	}{
		{"bad date", "due_date", "April 1"},
		{"zero max score", "max_score", "0"},
		{"bad status", "status", "archived"},
		{"no course", "course", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fb, _ := newTestHandler(t)
			fb.Reply(http.MethodGet, "/course", testutil.Courses())
			form := url.Values{"course": {"c1"}, "title": {"T"}, "max_score": {"10"}, "status": {"active"}}
			form.Set(tt.field, tt.value)

			rec := testutil.NewRecorder()
			req := testutil.NewFormRequest("/assignments", form, testutil.AdminUser())
			h.HandleCreate(rec, req)

			if n := fb.Count(http.MethodPost, "/assignment"); n != 0 {
				t.Errorf("backend called %d times", n)
			}
		})
	}
}

func TestHandleGrade(t *testing.T) {
	grade := func(score string) (*testutil.FakeBackend, *testutil.ResponseRecorder, *auth.SessionManager) {
		h, fb, sm := newTestHandler(t)
		fb.Reply(http.MethodGet, "/assignment/{id}", testutil.Assignments()[0])
		fb.Reply(http.MethodPatch, "/assignment/submission/{id}", models.Submission{ID: "s1"})

		form := url.Values{"score": {score}, "feedback": {"<b>Solid</b> work"}}
		req := testutil.NewFormRequest("/assignments/a1/submissions/s1/grade", form, testutil.AdminUser())
		req = testutil.WithChiURLParam(req, "id", "a1")
		req = testutil.WithChiURLParam(req, "sid", "s1")
		rec := testutil.NewRecorder()
		h.HandleGrade(rec, req)
		return fb, rec, sm
	}

	t.Run("within range", func(t *testing.T) {
		fb, rec, _ := grade("92.5")
		rec.AssertRedirect(t, "/assignments/a1")
		call, ok := fb.Last(http.MethodPatch, "/assignment/submission/s1")
		if !ok {
			t.Fatal("grade not sent")
		}
		var body models.GradeInput
		if err := call.DecodeBody(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Score != 92.5 || body.Feedback != "Solid work" {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("above max score", func(t *testing.T) {
		fb, rec, sm := grade("101")
		if fb.Count(http.MethodPatch, "/assignment/submission/s1") != 0 {
			t.Error("grade sent")
		}
		toasts := testutil.Toasts(sm, rec.ResponseRecorder)
		if len(toasts) != 1 || toasts[0].Message != "Score must be between 0 and 100." {
			t.Errorf("toasts = %+v", toasts)
		}
	})

	t.Run("negative", func(t *testing.T) {
		fb, rec, sm := grade("-3")
		rec.AssertRedirect(t, "/assignments/a1")
		if len(fb.Calls()) != 0 {
			t.Errorf("backend called: %+v", fb.Calls())
		}
		toasts := testutil.Toasts(sm, rec.ResponseRecorder)
		if len(toasts) != 1 || toasts[0].Kind != toast.KindError {
			t.Errorf("toasts = %+v", toasts)
		}
	})
}

func TestServeView_LoadsSubmissions(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/assignment/{id}", testutil.Assignments()[0])
	fb.Reply(http.MethodGet, "/assignment/{id}/submissions", testutil.Submissions())

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest(http.MethodGet, "/assignments/a1", testutil.AdminUser()), "id", "a1")
	h.ServeView(rec, req)

	if fb.Count(http.MethodGet, "/assignment/a1/submissions") != 1 {
		t.Error("submissions not requested")
	}
}
