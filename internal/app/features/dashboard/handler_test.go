package dashboard

import (
	"net/http"
	"testing"

	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	sm := testutil.SessionManager(t)
	return NewHandler(fb.Backend(), testutil.Actions(sm), zap.NewNop()), fb
}

func stubAll(fb *testutil.FakeBackend) {
	fb.Reply(http.MethodGet, "/analytics/overview", testutil.Overview())
	fb.Reply(http.MethodGet, "/course", testutil.Courses())
	fb.Reply(http.MethodGet, "/reviews", testutil.Reviews())
	fb.Reply(http.MethodGet, "/tickets", testutil.Tickets())
	fb.Reply(http.MethodGet, "/enrollments", testutil.Enrollments())
}

func TestServeDashboard_FetchesWhatTheRoleCanSee(t *testing.T) {
	tests := []struct {
		name           string
		user           testutil.TestUser
		wantOverview   int
		wantEnrollment int
	}{
		{"admin", testutil.AdminUser(), 1, 1},
		{"moderator", testutil.ModeratorUser(), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fb := newTestHandler(t)
			stubAll(fb)

			rec := testutil.NewRecorder()
			req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", tt.user)
			h.ServeDashboard(rec, req)

			if n := fb.Count(http.MethodGet, "/analytics/overview"); n != tt.wantOverview {
				t.Errorf("overview calls = %d, want %d", n, tt.wantOverview)
			}
			if n := fb.Count(http.MethodGet, "/enrollments"); n != tt.wantEnrollment {
				t.Errorf("enrollment calls = %d, want %d", n, tt.wantEnrollment)
			}
			for _, p := range []string{"/course", "/reviews", "/tickets"} {
				if n := fb.Count(http.MethodGet, p); n != 1 {
					t.Errorf("%s calls = %d, want 1", p, n)
				}
			}
		})
	}
}

func TestServeDashboard_ExpiredSession(t *testing.T) {
	h, fb := newTestHandler(t)
	stubAll(fb)
	fb.Fail(http.MethodGet, "/tickets", http.StatusUnauthorized, "jwt expired")

	rec := testutil.NewRecorder()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.AdminUser())
	h.ServeDashboard(rec, req)

	rec.AssertRedirect(t, "/login")
}

func TestBuildView(t *testing.T) {
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.AdminUser())
	data := dashboardData{BaseVM: viewdata.NewBaseVM(nil, req, "Dashboard", "")}
	buildView(&data, snapshot{
		overview:    testutil.Overview(),
		hasOverview: true,
		courses:     testutil.Courses(),
		reviews:     testutil.Reviews(),
		tickets:     testutil.Tickets(),
		enrollments: testutil.Enrollments(),
	})

	got := map[string]card{}
	for _, c := range data.Cards {
		got[c.Label] = c
	}
	checks := map[string]string{
		"Courses":        "3",
		"Students":       "153",
		"Revenue":        "$98.00",
		"Enrollments":    "4",
		"Open tickets":   "2",
		"Average rating": "3.5",
	}
	for label, want := range checks {
		if got[label].Value != want {
			t.Errorf("%s = %q, want %q", label, got[label].Value, want)
		}
	}
	if got["Enrollments"].Hint != "25.0% completed" {
		t.Errorf("enrollment hint = %q", got["Enrollments"].Hint)
	}
	if len(data.RecentTickets) != 2 {
		t.Errorf("recent tickets = %d, want 2 (open + in progress)", len(data.RecentTickets))
	}
	if len(data.PendingReviews) != 1 || data.PendingReviews[0].ID != "r3" {
		t.Errorf("pending reviews = %+v", data.PendingReviews)
	}
	if len(data.TopCourses) != 1 {
		t.Errorf("top courses = %d", len(data.TopCourses))
	}
}

func TestBuildView_ModeratorHasNoRevenue(t *testing.T) {
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", testutil.ModeratorUser())
	data := dashboardData{BaseVM: viewdata.NewBaseVM(nil, req, "Dashboard", "")}
	buildView(&data, snapshot{courses: testutil.Courses(), tickets: testutil.Tickets(), reviews: testutil.Reviews()})

	for _, c := range data.Cards {
		if c.Label == "Revenue" || c.Label == "Enrollments" {
			t.Errorf("moderator sees %q card", c.Label)
		}
	}
}
