// internal/app/features/courses/list.go
package courses

import (
	"net/http"
	"net/url"

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

func listFilter(r *http.Request) stats.CourseFilter {
	return stats.CourseFilter{
		Search:   query.Search(r, "q"),
		Status:   query.Get(r, "status"),
		Category: query.Get(r, "category"),
	}
}

// ServeList handles GET /courses (with optional ?q=, ?status=, ?category=).
// It supports HTMX partial refresh of the table when HX-Target="courses-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list courses")
	defer cancel()

	courses, err := h.API.Courses.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load courses.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := stats.FilterCourses(courses, f)
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)

	data := listData{
		BaseVM:          viewdata.NewBaseVM(w, r, "Courses", "/dashboard"),
		Q:               f.Search,
		Status:          f.Status,
		Category:        f.Category,
		StatusOptions:   format.Options(models.CourseStatuses, f.Status),
		CategoryOptions: categoryOptions(stats.Categories(courses), f.Category),
		Stats:           summarize(stats.CalculateCourseStats(courses)),
		Rows:            rows(page),
		Range:           rng,
		PageQuery: paging.Query(url.Values{
			"q": {f.Search}, "status": {f.Status}, "category": {f.Category},
		}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "courses-table-wrap" {
		templates.RenderSnippet(w, "courses_table", data)
		return
	}
	templates.Render(w, r, "courses_list", data)
}

// categoryOptions keeps category names as typed; format.Options would
// title-case them.
func categoryOptions(categories []string, selected string) []format.Option {
	out := make([]format.Option, 0, len(categories))
	for _, c := range categories {
		out = append(out, format.Option{Value: c, Label: c, Selected: c == selected})
	}
	return out
}

func summarize(s stats.CourseStats) statsView {
	return statsView{
		Total:         format.Count(s.Total),
		Published:     format.Count(s.Published),
		Draft:         format.Count(s.Draft),
		Archived:      format.Count(s.Archived),
		Students:      format.Count(s.TotalStudents),
		AverageRating: format.Decimal(s.AverageRating),
	}
}

func rows(courses []models.Course) []courseRow {
	out := make([]courseRow, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseRow{
			ID:          c.ID,
			Title:       c.Title,
			Category:    c.Category,
			Level:       format.Label(c.Level),
			Instructor:  c.InstructorName,
			Price:       price(c.Price),
			Status:      c.Status,
			IsPublished: c.IsPublished,
			Students:    format.Count(c.StudentCount),
			Rating:      format.Decimal(c.Rating),
		})
	}
	return out
}

func price(p float64) string {
	if p == 0 {
		return "Free"
	}
	return format.Money(p)
}
