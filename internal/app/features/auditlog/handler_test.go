package auditlog_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/features/auditlog"
	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
)

func TestServeList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLogout, ActorEmail: "root@example.com", Success: true}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	logger := zap.NewNop()
	h := auditlog.NewHandler(store, uierrors.NewErrorLogger(logger), logger)

	rec := testutil.NewRecorder()
	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodGet, "/auditlog?tz=Europe/London", testutil.SuperAdminUser()), "audit-table-wrap")
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if body := rec.Body.String(); !strings.Contains(body, "root@example.com") || strings.Contains(body, "<html") {
		t.Errorf("expected the audit table snippet:\n%s", body)
	}
}

func TestServeList_NoStore(t *testing.T) {
	logger := zap.NewNop()
	h := auditlog.NewHandler(nil, uierrors.NewErrorLogger(logger), logger)

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/auditlog", testutil.SuperAdminUser())
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	if body := rec.Body.String(); !strings.Contains(body, "not being recorded") {
		t.Errorf("missing disabled notice:\n%s", body)
	}
}
