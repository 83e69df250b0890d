package tickets_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/learnadmin/internal/app/features/errors"
	"github.com/dalemusser/learnadmin/internal/app/features/tickets"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*tickets.Handler, *testutil.FakeBackend, *auth.SessionManager) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	logger := zap.NewNop()
	return tickets.NewHandler(fb.Backend(), testutil.Actions(sm), uierrors.NewErrorLogger(logger), logger), fb, sm
}

func TestHandleReply(t *testing.T) {
	h, fb, sm := newTestHandler(t)
	fb.Reply(http.MethodPost, "/tickets/{id}/reply", nil)

	rec := testutil.NewRecorder()
	form := url.Values{"message": {`Try clearing the cache <img src=x onerror=alert(1)>`}}
	req := testutil.NewFormRequest("/tickets/t1/reply", form, testutil.ModeratorUser())
	h.HandleReply(rec, testutil.WithChiURLParam(req, "id", "t1"))

	rec.AssertRedirect(t, "/tickets/t1")
	call, ok := fb.Last(http.MethodPost, "/tickets/t1/reply")
	if !ok {
		t.Fatal("reply not sent")
	}
	var body models.ReplyInput
	if err := call.DecodeBody(&body); err != nil {
		t.Fatalf("DecodeBody: %v", err)
	}
	if !strings.HasPrefix(body.Message, "Try clearing the cache") || strings.Contains(body.Message, "onerror") {
		t.Errorf("message = %q", body.Message)
	}
	toasts := testutil.Toasts(sm, rec.ResponseRecorder)
	if len(toasts) != 1 || toasts[0].Message != "Reply sent." {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestHandleReply_EmptyKeepsThread(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/tickets/{id}", testutil.Tickets()[0])

	rec := testutil.NewRecorder()
	req := testutil.NewFormRequest("/tickets/t1/reply", url.Values{"message": {"<p></p>"}}, testutil.ModeratorUser())
	h.HandleReply(rec, testutil.WithChiURLParam(req, "id", "t1"))

	rec.AssertStatus(t, http.StatusOK)
	if fb.Count(http.MethodPost, "/tickets/t1/reply") != 0 {
		t.Error("empty reply was sent")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Reply cannot be empty.") || !strings.Contains(body, "Looking into it") {
		t.Errorf("expected error and thread:\n%s", body)
	}
}

func TestHandleStatus(t *testing.T) {
	tests := []struct {
		status   string
		wantSent bool
		wantMsg  string
	}{
		{"in_progress", true, "Ticket marked in progress."},
		{"closed", true, "Ticket marked closed."},
		{"archived", false, "Unknown ticket status."},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			h, fb, sm := newTestHandler(t)
			fb.Reply(http.MethodPatch, "/tickets/{id}/status", nil)

			rec := testutil.NewRecorder()
			form := url.Values{"status": {tt.status}, "return": {"/tickets/t2"}}
			req := testutil.NewFormRequest("/tickets/t2/status", form, testutil.ModeratorUser())
			h.HandleStatus(rec, testutil.WithChiURLParam(req, "id", "t2"))

			rec.AssertRedirect(t, "/tickets/t2")
			if got := fb.Count(http.MethodPatch, "/tickets/t2/status"); (got == 1) != tt.wantSent {
				t.Errorf("PATCH count = %d", got)
			}
			toasts := testutil.Toasts(sm, rec.ResponseRecorder)
			if len(toasts) != 1 || toasts[0].Message != tt.wantMsg {
				t.Errorf("toasts = %+v", toasts)
			}
		})
	}
}

func TestServeList_PriorityFilter(t *testing.T) {
	h, fb, _ := newTestHandler(t)
	fb.Reply(http.MethodGet, "/tickets", testutil.Tickets())

	rec := testutil.NewRecorder()
	req := testutil.HTMX(testutil.NewAuthenticatedRequest(http.MethodGet, "/tickets?priority=high", testutil.ModeratorUser()), "tickets-table-wrap")
	h.ServeList(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "Cannot play video") || strings.Contains(body, "Refund request") {
		t.Errorf("unexpected rows:\n%s", body)
	}
}
