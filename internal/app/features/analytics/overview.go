// internal/app/features/analytics/overview.go
package analytics

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	apianalytics "github.com/dalemusser/learnadmin/internal/app/api/analytics"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"golang.org/x/sync/errgroup"
)

type report struct {
	overview    models.AnalyticsOverview
	revenue     []models.RevenuePoint
	enrollments []models.Enrollment
}

// fetch loads the three report sources concurrently. Any failure fails the
// whole report since the sections cross-reference each other.
func (h *Handler) fetch(ctx context.Context, token, rng string) (report, error) {
	var (
		rep report
		g   errgroup.Group
	)
	g.Go(func() (err error) {
		rep.overview, err = h.API.Analytics.Overview(ctx, token)
		if err != nil {
			return fmt.Errorf("overview: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		rep.revenue, err = h.API.Analytics.Revenue(ctx, token, rng)
		if err != nil {
			return fmt.Errorf("revenue: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		rep.enrollments, err = h.API.Enrollments.List(ctx, token)
		if err != nil {
			return fmt.Errorf("enrollments: %w", err)
		}
		return nil
	})
	return rep, g.Wait()
}

// ServeOverview handles GET /analytics?range=. Changing the range from the
// page swaps only the revenue panel.
func (h *Handler) ServeOverview(w http.ResponseWriter, r *http.Request) {
	rng := apianalytics.NormalizeRange(query.Get(r, "range"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "analytics report")
	defer cancel()

	rep, err := h.fetch(ctx, auth.Token(r), rng)
	data := pageData{
		BaseVM:       viewdata.NewBaseVM(w, r, "Analytics", "/dashboard"),
		RangeOptions: rangeOptions(rng),
	}
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load analytics.")
		if done {
			return
		}
		data.AddError(msg)
	}

	data.Totals = summarizeOverview(rep.overview)
	data.Revenue = revenueChart(rng, rep.revenue)
	data.Enrollments = enrollmentBreakdown(stats.CalculateEnrollmentStats(rep.enrollments))
	data.Ranking = ranking(rep.overview.TopCourses)

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "revenue-wrap" {
		templates.RenderSnippet(w, "analytics_revenue", data)
		return
	}
	templates.Render(w, r, "analytics", data)
}

var rangeLabels = map[string]string{
	models.Range7Days:   "Last 7 days",
	models.Range30Days:  "Last 30 days",
	models.Range90Days:  "Last 90 days",
	models.Range12Month: "Last 12 months",
}

func rangeOptions(selected string) []format.Option {
	out := make([]format.Option, 0, len(models.RevenueRanges))
	for _, r := range models.RevenueRanges {
		out = append(out, format.Option{Value: r, Label: rangeLabels[r], Selected: r == selected})
	}
	return out
}

func summarizeOverview(o models.AnalyticsOverview) totals {
	return totals{
		Courses:     format.Count(o.TotalCourses),
		Students:    format.Count(o.TotalStudents),
		Instructors: format.Count(o.TotalInstructors),
		Enrollments: format.Count(o.TotalEnrollments),
		Revenue:     format.Money(o.TotalRevenue),
		Tickets:     format.Count(o.ActiveTickets),
		Rating:      format.Decimal(o.AverageRating),
	}
}

func revenueChart(rng string, points []models.RevenuePoint) revenueView {
	v := revenueView{Range: rng}
	var (
		peak  float64
		sum   float64
		count int
	)
	for _, p := range points {
		if p.Revenue > peak {
			peak = p.Revenue
		}
		sum += p.Revenue
		count += p.Enrollments
	}
	for _, p := range points {
		var width float64
		if peak > 0 {
			width = stats.Round1(p.Revenue / peak * 100)
		}
		v.Bars = append(v.Bars, revenueBar{
			Period:      p.Period,
			Revenue:     format.Money(p.Revenue),
			Enrollments: format.Count(p.Enrollments),
			Width:       width,
		})
	}
	v.Total = format.Money(sum)
	v.Enrollments = format.Count(count)
	if count > 0 {
		v.Average = format.Money(sum / float64(count))
	} else {
		v.Average = format.Money(0)
	}
	return v
}

func enrollmentBreakdown(s stats.EnrollmentStats) enrollmentView {
	v := enrollmentView{
		Completion: format.Percent(s.CompletionRate),
		Progress:   format.Percent(s.AverageProgress),
		Paid:       format.Money(s.Revenue),
	}
	for _, st := range models.EnrollmentStatuses {
		v.ByStatus = append(v.ByStatus, statCount{Label: format.Label(st), Count: format.Count(s.ByStatus[st])})
	}
	for _, p := range models.PaymentStatuses {
		v.ByPayment = append(v.ByPayment, statCount{Label: format.Label(p), Count: format.Count(s.ByPayment[p])})
	}
	return v
}

// byRevenue orders the ranking by revenue, then enrollments, then title.
func byRevenue(in []models.CourseRanking) []models.CourseRanking {
	out := append([]models.CourseRanking(nil), in...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		if out[i].Enrollments != out[j].Enrollments {
			return out[i].Enrollments > out[j].Enrollments
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func ranking(in []models.CourseRanking) []rankingRow {
	sorted := byRevenue(in)
	out := make([]rankingRow, 0, len(sorted))
	for i, c := range sorted {
		out = append(out, rankingRow{
			Rank:        i + 1,
			CourseID:    c.CourseID,
			Title:       c.Title,
			Enrollments: format.Count(c.Enrollments),
			Revenue:     format.Money(c.Revenue),
			Rating:      format.Decimal(c.Rating),
		})
	}
	return out
}
