// internal/app/features/assignments/list.go
package assignments

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
	"golang.org/x/sync/errgroup"
)

// ServeList handles GET /assignments?course=&status=&q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	courseID := query.Get(r, "course")
	status := query.Get(r, "status")
	q := query.Search(r, "q")
	token := auth.Token(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list assignments")
	defer cancel()

	var (
		courses     []models.Course
		assignments []models.Assignment
		g           errgroup.Group
	)
	g.Go(func() (err error) {
		courses, err = h.API.Courses.List(ctx, token)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = h.API.Assignments.List(ctx, token, courseID)
		return err
	})
	var loadErr string
	if err := g.Wait(); err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load assignments.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := filter(assignments, status, q)
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)

	data := listData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Assignments", "/dashboard"),
		CourseID:      courseID,
		Status:        status,
		Q:             q,
		CourseOptions: format.CourseOptions(courses, courseID),
		StatusOptions: format.Options(models.AssignmentStatuses, status),
		Rows:          rows(page, courseTitles(courses), time.Now()),
		Range:         rng,
		PageQuery:     paging.Query(url.Values{"course": {courseID}, "status": {status}, "q": {q}}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "assignments-table-wrap" {
		templates.RenderSnippet(w, "assignments_table", data)
		return
	}
	templates.Render(w, r, "assignments_list", data)
}

// filter keeps assignments matching status and q, soonest due first with
// undated ones last.
func filter(assignments []models.Assignment, status, q string) []models.Assignment {
	fq := text.Fold(q)
	out := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if status != "" && a.Status != status {
			continue
		}
		if fq != "" && !strings.Contains(text.Fold(a.Title+" "+a.CourseTitle), fq) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DueDate, out[j].DueDate
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		}
		return di.Before(*dj)
	})
	return out
}

func rows(assignments []models.Assignment, titles map[string]string, now time.Time) []assignmentRow {
	out := make([]assignmentRow, 0, len(assignments))
	for _, a := range assignments {
		course := a.CourseTitle
		if course == "" {
			course = titles[a.CourseID]
		}
		out = append(out, assignmentRow{
			ID:          a.ID,
			CourseID:    a.CourseID,
			Course:      course,
			Title:       a.Title,
			Due:         format.DatePtr(a.DueDate),
			Overdue:     a.Status == models.AssignmentActive && a.DueDate != nil && a.DueDate.Before(now),
			MaxScore:    a.MaxScore,
			Status:      a.Status,
			Submissions: format.Count(a.SubmissionCount),
		})
	}
	return out
}

func courseTitles(courses []models.Course) map[string]string {
	out := make(map[string]string, len(courses))
	for _, c := range courses {
		out[c.ID] = c.Title
	}
	return out
}
