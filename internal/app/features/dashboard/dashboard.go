// internal/app/features/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

// recentLimit caps the ticket and review panels.
const recentLimit = 5

// snapshot is everything the dashboard fetched. Sources the role may not
// open are never requested and stay empty.
type snapshot struct {
	overview    models.AnalyticsOverview
	hasOverview bool
	courses     []models.Course
	reviews     []models.Review
	tickets     []models.SupportTicket
	enrollments []models.Enrollment
}

// ServeDashboard handles GET /dashboard.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard load")
	defer cancel()

	snap, err := h.load(ctx, u)

	data := dashboardData{BaseVM: viewdata.NewBaseVM(w, r, "Dashboard", "")}
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Some dashboard figures could not be loaded.")
		if done {
			return
		}
		data.AddError(msg)
	}
	buildView(&data, snap)

	templates.Render(w, r, "dashboard", data)
}

// load fetches every source the role can see concurrently. A failing
// source does not cancel the others; the first error is returned with
// whatever did load.
func (h *Handler) load(ctx context.Context, u *auth.SessionUser) (snapshot, error) {
	var (
		s snapshot
		g errgroup.Group
	)
	can := func(rt permissions.Route) bool { return permissions.CanAccess(u.Role, rt) }

	if can(permissions.Analytics) {
		g.Go(func() error {
			ov, err := h.API.Analytics.Overview(ctx, u.Token)
			if err != nil {
				return fmt.Errorf("analytics overview: %w", err)
			}
			s.overview, s.hasOverview = ov, true
			return nil
		})
	}
	if can(permissions.Courses) {
		g.Go(func() (err error) {
			s.courses, err = h.API.Courses.List(ctx, u.Token)
			return wrap("courses", err)
		})
	}
	if can(permissions.Reviews) {
		g.Go(func() (err error) {
			s.reviews, err = h.API.Reviews.List(ctx, u.Token)
			return wrap("reviews", err)
		})
	}
	if can(permissions.Tickets) {
		g.Go(func() (err error) {
			s.tickets, err = h.API.Tickets.List(ctx, u.Token)
			return wrap("tickets", err)
		})
	}
	if can(permissions.Enrollments) {
		g.Go(func() (err error) {
			s.enrollments, err = h.API.Enrollments.List(ctx, u.Token)
			return wrap("enrollments", err)
		})
	}

	return s, g.Wait()
}

func wrap(source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", source, err)
}

// buildView turns a snapshot into cards and panels.
func buildView(data *dashboardData, s snapshot) {
	if data.Can(string(permissions.Courses)) {
		cs := stats.CalculateCourseStats(s.courses)
		total := cs.Total
		if total == 0 && s.hasOverview {
			total = s.overview.TotalCourses
		}
		data.Cards = append(data.Cards, card{
			Label: "Courses",
			Value: format.Count(total),
			Hint:  format.Count(cs.Published) + " published",
			Link:  "/courses",
		})
	}
	if s.hasOverview {
		data.Cards = append(data.Cards,
			card{Label: "Students", Value: format.Count(s.overview.TotalStudents), Link: "/users"},
			card{Label: "Instructors", Value: format.Count(s.overview.TotalInstructors), Link: "/instructors"},
			card{Label: "Revenue", Value: format.Money(s.overview.TotalRevenue), Link: "/analytics"},
		)
	}
	if data.Can(string(permissions.Enrollments)) {
		es := stats.CalculateEnrollmentStats(s.enrollments)
		total := es.Total
		if total == 0 && s.hasOverview {
			total = s.overview.TotalEnrollments
		}
		data.Cards = append(data.Cards, card{
			Label: "Enrollments",
			Value: format.Count(total),
			Hint:  format.Percent(es.CompletionRate) + " completed",
			Link:  "/enrollments",
		})
	}
	if data.Can(string(permissions.Tickets)) {
		ts := stats.CalculateTicketStats(s.tickets)
		data.Cards = append(data.Cards, card{
			Label: "Open tickets",
			Value: format.Count(ts.Open),
			Hint:  format.Count(ts.ByPriority[models.PriorityUrgent]) + " urgent",
			Link:  "/tickets?status=open",
		})
		data.RecentTickets = recentTickets(s.tickets)
	}
	if data.Can(string(permissions.Reviews)) {
		rs := stats.CalculateReviewStats(s.reviews)
		data.Cards = append(data.Cards, card{
			Label: "Average rating",
			Value: format.Decimal(rs.Average),
			Hint:  format.Count(rs.Total) + " reviews",
			Link:  "/reviews",
		})
		data.PendingReviews = pendingReviews(s.reviews)
	}
	for _, c := range s.overview.TopCourses {
		data.TopCourses = append(data.TopCourses, rankingRow{
			Title:       c.Title,
			Enrollments: format.Count(c.Enrollments),
			Revenue:     format.Money(c.Revenue),
			Rating:      format.Decimal(c.Rating),
		})
	}
}

// recentTickets returns the newest unresolved tickets.
func recentTickets(tickets []models.SupportTicket) []ticketRow {
	var open []models.SupportTicket
	for _, t := range tickets {
		if t.Status == models.TicketOpen || t.Status == models.TicketInProgress {
			open = append(open, t)
		}
	}
	sort.SliceStable(open, func(i, j int) bool { return open[i].CreatedAt.After(open[j].CreatedAt) })
	if len(open) > recentLimit {
		open = open[:recentLimit]
	}
	rows := make([]ticketRow, 0, len(open))
	for _, t := range open {
		rows = append(rows, ticketRow{
			ID:        t.ID,
			Subject:   t.Subject,
			Requester: t.UserName,
			Priority:  t.Priority,
			Status:    t.Status,
			Opened:    format.Date(t.CreatedAt),
		})
	}
	return rows
}

// pendingReviews returns the newest reviews awaiting moderation.
func pendingReviews(reviews []models.Review) []reviewRow {
	pending := stats.FilterReviews(reviews, stats.ReviewFilter{Status: models.ReviewPending})
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].CreatedAt.After(pending[j].CreatedAt) })
	if len(pending) > recentLimit {
		pending = pending[:recentLimit]
	}
	rows := make([]reviewRow, 0, len(pending))
	for _, r := range pending {
		rows = append(rows, reviewRow{
			ID:      r.ID,
			Course:  r.CourseTitle,
			Student: r.UserName,
			Rating:  stats.ClampRating(r.Rating),
			Comment: r.Comment,
			Date:    format.Date(r.CreatedAt),
		})
	}
	return rows
}
