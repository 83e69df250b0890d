// internal/app/features/assignments/view.go
package assignments

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// ServeView shows an assignment with its submissions and a grade form for
// each.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := auth.Token(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get assignment")
	defer cancel()

	var (
		a    models.Assignment
		subs []models.Submission
		g    errgroup.Group
	)
	g.Go(func() (err error) {
		a, err = h.API.Assignments.Get(ctx, token, id)
		return err
	})
	g.Go(func() (err error) {
		subs, err = h.API.Assignments.Submissions(ctx, token, id)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Act.Fail(w, r, err, "Assignment not found.", "/assignments")
		return
	}

	graded, avg := gradeSummary(subs)
	data := viewData{
		BaseVM:       viewdata.NewBaseVM(w, r, a.Title, "/assignments?course="+a.CourseID),
		ID:           a.ID,
		CourseID:     a.CourseID,
		Course:       a.CourseTitle,
		Title:        a.Title,
		Description:  htmlsanitize.PrepareForDisplay(a.Description),
		Due:          format.DatePtr(a.DueDate),
		MaxScore:     a.MaxScore,
		Status:       a.Status,
		Graded:       format.Count(graded) + " of " + format.Count(len(subs)),
		AverageScore: avg,
		Submissions:  submissionRows(subs),
	}
	templates.Render(w, r, "assignment_view", data)
}

// gradeSummary counts graded submissions and averages their scores.
func gradeSummary(subs []models.Submission) (int, string) {
	var n int
	var sum float64
	for _, s := range subs {
		if s.Score != nil {
			n++
			sum += *s.Score
		}
	}
	if n == 0 {
		return 0, "—"
	}
	return n, format.Decimal(sum / float64(n))
}

func submissionRows(subs []models.Submission) []submissionRow {
	out := make([]submissionRow, 0, len(subs))
	for _, s := range subs {
		row := submissionRow{
			ID:        s.ID,
			Student:   s.StudentName,
			Submitted: format.DateTime(s.SubmittedAt),
			Status:    s.Status,
			Text:      s.Text,
			FileURL:   s.FileURL,
			Feedback:  s.Feedback,
			Graded:    s.Score != nil,
		}
		if s.Score != nil {
			row.Score = strconv.FormatFloat(*s.Score, 'f', -1, 64)
		}
		out = append(out, row)
	}
	return out
}
