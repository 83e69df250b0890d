package reviews_test

import (
	"bytes"
	"net/http"
	"net/url"
	"testing"

	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/features/reviews"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*reviews.Handler, *testutil.FakeBackend, *auth.SessionManager) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return reviews.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb, sm
}

func TestHandleStatus(t *testing.T) {
	tests := []struct {
		status   string
		wantSent bool
		wantMsg  string
	}{
		{"approved", true, "Review approved."},
		{"hidden", true, "Review hidden."},
		{"deleted", false, "Unknown review status."},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			h, fb, sm := newTestHandler(t)
			fb.Reply(http.MethodPatch, "/reviews/{id}", nil)

			rec := testutil.NewRecorder()
			req := testutil.NewFormRequest("/reviews/r3/status", url.Values{"status": {tt.status}}, testutil.ModeratorUser())
			h.HandleStatus(rec, testutil.WithChiURLParam(req, "id", "r3"))

			rec.AssertRedirect(t, "/reviews")
			call, sent := fb.Last(http.MethodPatch, "/reviews/r3")
			if sent != tt.wantSent {
				t.Fatalf("sent = %v", sent)
			}
			if sent {
				var body map[string]string
				if err := call.DecodeBody(&body); err != nil || body["status"] != tt.status {
					t.Errorf("body = %v (%v)", body, err)
				}
				if call.Auth != "Bearer tok-mod" {
					t.Errorf("Authorization = %q", call.Auth)
				}
			}
			toasts := testutil.Toasts(sm, rec.ResponseRecorder)
			if len(toasts) != 1 || toasts[0].Message != tt.wantMsg {
				t.Errorf("toasts = %+v", toasts)
			}
		})
	}
}

func TestServeExport_RatingFilter(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/reviews", testutil.Reviews())

	rec := testutil.NewRecorder()
	h.ServeExport(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/reviews/export?rating=4", testutil.AdminUser()))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Reviews")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %d, want header + two 4-star reviews", len(rows))
	}
}

func TestServeList_BackendErrorStillRenders(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Fail(http.MethodGet, "/reviews", http.StatusInternalServerError, "database offline")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/reviews", testutil.AdminUser())
	h.ServeList(rec, req)

	if loc := rec.Header().Get("Location"); loc != "" {
		t.Errorf("redirected to %q", loc)
	}
}
