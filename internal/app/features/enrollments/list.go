// internal/app/features/enrollments/list.go
package enrollments

import (
	"net/http"
	"net/url"
	"sort"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

func listFilter(r *http.Request) stats.EnrollmentFilter {
	return stats.EnrollmentFilter{
		Search:        query.Search(r, "q"),
		Status:        query.Get(r, "status"),
		PaymentStatus: query.Get(r, "payment"),
		CourseID:      query.Get(r, "course"),
	}
}

// ServeList handles GET /enrollments. Stats cover the whole filtered set,
// not just the visible page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list enrollments")
	defer cancel()

	enrollments, err := h.API.Enrollments.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load enrollments.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := newestFirst(stats.FilterEnrollments(enrollments, f))
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)

	data := listData{
		BaseVM:         viewdata.NewBaseVM(w, r, "Enrollments", "/dashboard"),
		Q:              f.Search,
		Status:         f.Status,
		PaymentStatus:  f.PaymentStatus,
		CourseID:       f.CourseID,
		StatusOptions:  format.Options(models.EnrollmentStatuses, f.Status),
		PaymentOptions: format.Options(models.PaymentStatuses, f.PaymentStatus),
		CourseOptions:  courseOptions(enrollments, f.CourseID),
		Stats:          summarize(stats.CalculateEnrollmentStats(filtered)),
		Rows:           rows(page),
		Range:          rng,
		PageQuery: paging.Query(url.Values{
			"q": {f.Search}, "status": {f.Status}, "payment": {f.PaymentStatus}, "course": {f.CourseID},
		}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "enrollments-table-wrap" {
		templates.RenderSnippet(w, "enrollments_table", data)
		return
	}
	templates.Render(w, r, "enrollments_list", data)
}

func newestFirst(enrollments []models.Enrollment) []models.Enrollment {
	sort.SliceStable(enrollments, func(i, j int) bool {
		return enrollments[i].EnrolledAt.After(enrollments[j].EnrolledAt)
	})
	return enrollments
}

// courseOptions lists the courses that appear in enrollments, by title.
func courseOptions(enrollments []models.Enrollment, selected string) []format.Option {
	seen := map[string]bool{}
	var out []format.Option
	for _, e := range enrollments {
		if e.CourseID == "" || seen[e.CourseID] {
			continue
		}
		seen[e.CourseID] = true
		out = append(out, format.Option{Value: e.CourseID, Label: e.CourseTitle, Selected: e.CourseID == selected})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func summarize(s stats.EnrollmentStats) statsView {
	v := statsView{
		Total:           format.Count(s.Total),
		CompletionRate:  format.Percent(s.CompletionRate),
		AverageProgress: format.Percent(s.AverageProgress),
		Revenue:         format.Money(s.Revenue),
	}
	for _, st := range models.EnrollmentStatuses {
		v.ByStatus = append(v.ByStatus, statCount{Label: format.Label(st), Value: format.Count(s.ByStatus[st])})
	}
	for _, st := range models.PaymentStatuses {
		v.ByPayment = append(v.ByPayment, statCount{Label: format.Label(st), Value: format.Count(s.ByPayment[st])})
	}
	return v
}

func row(e models.Enrollment) enrollmentRow {
	pct := int(e.Progress)
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	return enrollmentRow{
		ID:            e.ID,
		Student:       e.StudentName,
		Email:         e.StudentEmail,
		CourseID:      e.CourseID,
		Course:        e.CourseTitle,
		Status:        e.Status,
		PaymentStatus: e.PaymentStatus,
		Amount:        format.Money(e.AmountPaid),
		Progress:      format.Percent(e.Progress),
		ProgressPct:   pct,
		Enrolled:      format.Date(e.EnrolledAt),
	}
}

func rows(enrollments []models.Enrollment) []enrollmentRow {
	out := make([]enrollmentRow, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, row(e))
	}
	return out
}
