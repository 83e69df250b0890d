package enrollments_test

import (
	"bytes"
	"net/http"
	"net/url"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/features/enrollments"
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*enrollments.Handler, *testutil.FakeBackend, *auth.SessionManager) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return enrollments.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb, sm
}

func TestHandleUpdate(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		wantSent bool
		want     models.EnrollmentUpdate
	}{
		{"both fields", url.Values{"status": {"completed"}, "payment_status": {"paid"}}, true, models.EnrollmentUpdate{Status: "completed", PaymentStatus: "paid"}},
		{"payment only", url.Values{"payment_status": {"refunded"}}, true, models.EnrollmentUpdate{PaymentStatus: "refunded"}},
		{"nothing chosen", url.Values{}, false, models.EnrollmentUpdate{}},
		{"unknown status", url.Values{"status": {"graduated"}}, false, models.EnrollmentUpdate{}},
		{"unknown payment", url.Values{"payment_status": {"comped"}}, false, models.EnrollmentUpdate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fb, sm := newTestHandler(t)
			fb.Reply(http.MethodPatch, "/enrollments/{id}", models.Enrollment{ID: "e1"})

			rec := testutil.NewRecorder()
			req := testutil.WithChiURLParam(testutil.NewFormRequest("/enrollments/e1/status", tt.form, testutil.AdminUser()), "id", "e1")
			h.HandleUpdate(rec, req)

			rec.AssertRedirect(t, "/enrollments/e1")
			call, sent := fb.Last(http.MethodPatch, "/enrollments/e1")
			if sent != tt.wantSent {
				t.Fatalf("sent = %v, want %v", sent, tt.wantSent)
			}
			if sent {
				var body models.EnrollmentUpdate
				if err := call.DecodeBody(&body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body != tt.want {
					t.Errorf("body = %+v, want %+v", body, tt.want)
				}
			}
			if toasts := testutil.Toasts(sm, rec.ResponseRecorder); len(toasts) != 1 {
				t.Errorf("toasts = %+v", toasts)
			}
		})
	}
}

func TestServeExport_AppliesFilters(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/enrollments", testutil.Enrollments())

	rec := testutil.NewRecorder()
	h.ServeExport(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/enrollments/export?payment=paid", testutil.AdminUser()))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Enrollments")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 paid", len(rows))
	}
	// e1 has no completion date.
	var sawNA bool
	for _, row := range rows[1:] {
		for _, cell := range row {
			if cell == "N/A" {
				sawNA = true
			}
		}
	}
	if !sawNA {
		t.Error("missing completion date not exported as N/A")
	}
}

func TestServeList_ExpiredSession(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Fail(http.MethodGet, "/enrollments", http.StatusUnauthorized, "jwt expired")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/enrollments", testutil.AdminUser())
	h.ServeList(rec, req)

	rec.AssertRedirect(t, "/login")
}

func TestHandleDelete_HTMX(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodDelete, "/enrollments/{id}", nil)

	rec := testutil.NewRecorder()
	req := testutil.HTMX(testutil.NewFormRequest("/enrollments/e4/delete", nil, testutil.AdminUser()), "enrollments-table-wrap")
	h.HandleDelete(rec, testutil.WithChiURLParam(req, "id", "e4"))

	rec.AssertStatus(t, http.StatusNoContent)
	if fb.Count(http.MethodDelete, "/enrollments/e4") != 1 {
		t.Error("delete not sent")
	}
}
