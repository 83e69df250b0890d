package lessons_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/features/lessons"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*lessons.Handler, *testutil.FakeBackend, *auth.SessionManager) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return lessons.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb, sm
}

func articleForm() url.Values {
	return url.Values{
		"module":  {"m1"},
		"title":   {"Variables"},
		"type":    {"article"},
		"content": {`<p onclick="steal()">Use <b>var</b></p><script>alert(1)</script>`},
	}
}

func TestHandleCreate_SanitizesContentAndFillsCourse(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/modules/{id}", testutil.Modules()[0])
	fb.Reply(http.MethodGet, "/lessons", testutil.Lessons())
	fb.Reply(http.MethodPost, "/lessons", models.Lesson{ID: "l3"})

	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.NewFormRequest("/lessons", articleForm(), testutil.AdminUser()))

	rec.AssertRedirect(t, "/lessons?module=m1")
	call, ok := fb.Last(http.MethodPost, "/lessons")
	if !ok {
		t.Fatal("create not sent")
	}
	var body models.LessonInput
	if err := call.DecodeBody(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if strings.Contains(body.Content, "script") || strings.Contains(body.Content, "onclick") {
		t.Errorf("content not sanitized: %q", body.Content)
	}
	if !strings.Contains(body.Content, "<b>var</b>") {
		t.Errorf("formatting lost: %q", body.Content)
	}
	if body.CourseID != "c1" || body.Order != 3 {
		t.Errorf("body = %+v, want course c1 order 3", body)
	}
}

func TestHandleCreate_TypeRules(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]string
	}{
		{"video without url", map[string]string{"type": "video", "content": ""}},
		{"document without url", map[string]string{"type": "document"}},
		{"article with only markup", map[string]string{"content": "<p><script>x</script></p>"}},
		{"unsafe video url", map[string]string{"type": "video", "video_url": "javascript:alert(1)"}},
		{"unknown type", map[string]string{"type": "podcast"}},
		{"negative duration", map[string]string{"duration": "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fb, _ := newTestHandler(t)
			fb.Reply(http.MethodGet, "/modules", testutil.Modules())
			form := articleForm()
			for k, v := range tt.set {
				form.Set(k, v)
			}

			rec := testutil.NewRecorder()
			req := testutil.NewFormRequest("/lessons", form, testutil.AdminUser())
			h.HandleCreate(rec, req)

			if n := fb.Count(http.MethodPost, "/lessons"); n != 0 {
				t.Errorf("backend called %d times", n)
			}
		})
	}
}

func TestHandleEdit_KeepsOnlyMatchingURL(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/modules/{id}", testutil.Modules()[0])
	fb.Reply(http.MethodPatch, "/lessons/{id}", models.Lesson{ID: "l1"})

	form := url.Values{
		"module":       {"m1"},
		"title":        {"Installing Go"},
		"type":         {"video"},
		"video_url":    {"https://cdn.test/videos/install.mp4"},
		"document_url": {"https://cdn.test/docs/old.pdf"},
		"order":        {"1"},
		"is_preview":   {"true"},
	}
	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewFormRequest("/lessons/l1/edit", form, testutil.AdminUser()), "id", "l1")
	h.HandleEdit(rec, req)

	rec.AssertRedirect(t, "/lessons/l1")
	call, ok := fb.Last(http.MethodPatch, "/lessons/l1")
	if !ok {
		t.Fatal("update not sent")
	}
	var body models.LessonInput
	if err := call.DecodeBody(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.DocumentURL != "" || body.VideoURL == "" || !body.IsPreview {
		t.Errorf("body = %+v", body)
	}
}

func TestServeView_NotFound(t *testing.T) {
	h, fb, sm := newTestHandler(t)
	fb.Fail(http.MethodGet, "/lessons/{id}", http.StatusNotFound, "Lesson not found")

	rec := testutil.NewRecorder()
	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest(http.MethodGet, "/lessons/zz", testutil.AdminUser()), "id", "zz")
	h.ServeView(rec, req)

	rec.AssertRedirect(t, "/lessons")
	if toasts := testutil.Toasts(sm, rec.ResponseRecorder); len(toasts) != 1 {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestHandleDelete_ReturnsToModule(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodDelete, "/lessons/{id}", nil)

	rec := testutil.NewRecorder()
	req := testutil.NewFormRequest("/lessons/l2/delete", url.Values{"module": {"m1"}}, testutil.AdminUser())
	h.HandleDelete(rec, testutil.WithChiURLParam(req, "id", "l2"))

	rec.AssertRedirect(t, "/lessons?module=m1")
	if fb.Count(http.MethodDelete, "/lessons/l2") != 1 {
		t.Error("delete not sent")
	}
}
