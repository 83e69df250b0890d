// internal/app/features/instructors/view.go
package instructors

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// ServeView shows an instructor profile and the courses they author.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := auth.Token(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get instructor")
	defer cancel()

	var (
		inst    models.Instructor
		courses []models.Course
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		inst, err = h.API.Instructors.Get(ctx, token, id)
		return err
	})
	g.Go(func() (err error) {
		courses, err = h.API.Courses.List(ctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		h.Act.Fail(w, r, err, "Instructor not found.", "/instructors")
		return
	}

	templates.Render(w, r, "instructor_view", viewData{
		BaseVM:        viewdata.NewBaseVM(w, r, inst.Name, "/instructors"),
		instructorRow: row(inst),
		Bio:           inst.Bio,
		Courses:       authoredBy(courses, id),
	})
}

func authoredBy(courses []models.Course, instructorID string) []courseRow {
	var out []courseRow
	for _, c := range courses {
		if c.InstructorID != instructorID {
			continue
		}
		out = append(out, courseRow{
			ID:       c.ID,
			Title:    c.Title,
			Status:   c.Status,
			Students: format.Count(c.StudentCount),
			Rating:   format.Decimal(c.Rating),
		})
	}
	return out
}
