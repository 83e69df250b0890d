// internal/app/features/instructors/list.go
package instructors

import (
	"net/http"
	"net/url"
	"strings"

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

func listFilter(r *http.Request) stats.InstructorFilter {
	return stats.InstructorFilter{
		Search: query.Search(r, "q"),
		Status: query.Get(r, "status"),
	}
}

// ServeList handles GET /instructors. Pending applications are counted
// separately so the header shows how many wait for review.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list instructors")
	defer cancel()

	all, err := h.API.Instructors.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load instructors.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := stats.FilterInstructors(all, f)
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)
	counts := stats.Count(all, func(i models.Instructor) string { return i.Status }, models.InstructorStatuses)

	data := listData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Instructors", "/dashboard"),
		Q:             f.Search,
		Status:        f.Status,
		StatusOptions: format.Options(models.InstructorStatuses, f.Status),
		Total:         format.Count(len(all)),
		Pending:       format.Count(counts[models.InstructorPending]),
		Approved:      format.Count(counts[models.InstructorApproved]),
		Suspended:     format.Count(counts[models.InstructorSuspended]),
		Rows:          rows(page),
		Range:         rng,
		PageQuery:     paging.Query(url.Values{"q": {f.Search}, "status": {f.Status}}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "instructors-table-wrap" {
		templates.RenderSnippet(w, "instructors_table", data)
		return
	}
	templates.Render(w, r, "instructors_list", data)
}

func row(i models.Instructor) instructorRow {
	return instructorRow{
		ID:         i.ID,
		Name:       i.Name,
		Email:      i.Email,
		Phone:      i.Phone,
		Expertise:  strings.Join(i.Expertise, ", "),
		Status:     i.Status,
		Courses:    format.Count(i.CourseCount),
		Students:   format.Count(i.StudentCount),
		Rating:     format.Decimal(i.Rating),
		Joined:     format.Date(i.CreatedAt),
		CanApprove: i.Status != models.InstructorApproved,
		CanSuspend: i.Status == models.InstructorApproved,
	}
}

func rows(all []models.Instructor) []instructorRow {
	out := make([]instructorRow, 0, len(all))
	for _, i := range all {
		out = append(out, row(i))
	}
	return out
}
