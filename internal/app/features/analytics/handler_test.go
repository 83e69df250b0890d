package analytics_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/features/analytics"
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*analytics.Handler, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return analytics.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb
}

func series() []models.RevenuePoint {
	return []models.RevenuePoint{{Period: "2026-03", Revenue: 98, Enrollments: 2}}
}

func TestServeOverview_RangeParam(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", "30d"},
		{"?range=7d", "7d"},
		{"?range=12m", "12m"},
		{"?range=forever", "30d"},
	}
	for _, tt := range tests {
		t.Run(tt.want+tt.query, func(t *testing.T) {
			h, fb := newTestHandler(t)
			fb.Reply(http.MethodGet, "/analytics/overview", testutil.Overview())
			fb.Reply(http.MethodGet, "/analytics/revenue", series())
			fb.Reply(http.MethodGet, "/enrollments", testutil.Enrollments())

			rec := testutil.NewRecorder()
			req := testutil.NewAuthenticatedRequest(http.MethodGet, "/analytics"+tt.query, testutil.AdminUser())
			h.ServeOverview(rec, req)

			rec.AssertStatus(t, http.StatusOK)
			call, ok := fb.Last(http.MethodGet, "/analytics/revenue")
			if !ok {
				t.Fatal("revenue not requested")
			}
			if got := call.Query.Get("range"); got != tt.want {
				t.Errorf("range = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServeOverview_RevenueSnippet(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.Reply(http.MethodGet, "/analytics/overview", testutil.Overview())
	fb.Reply(http.MethodGet, "/analytics/revenue", series())
	fb.Reply(http.MethodGet, "/enrollments", testutil.Enrollments())

	rec := testutil.NewRecorder()
	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodGet, "/analytics?range=90d", testutil.AdminUser()), "revenue-wrap")
	h.ServeOverview(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "2026-03") {
		t.Errorf("revenue bar missing:\n%s", body)
	}
	if strings.Contains(body, "Top courses") {
		t.Error("snippet rendered the full page")
	}
}

func TestServeRevenueExport(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.Reply(http.MethodGet, "/analytics/revenue", series())

	rec := testutil.NewRecorder()
	h.ServeRevenueExport(rec, testutil.NewAuthenticatedRequest(http.MethodGet, "/analytics/export/revenue?range=7d", testutil.AdminUser()))

	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "revenue_7d_") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Revenue_7d")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "98.00" {
		t.Errorf("rows = %v", rows)
	}
}
