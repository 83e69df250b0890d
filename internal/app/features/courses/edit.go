// internal/app/features/courses/edit.go
package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the edit form prefilled from the backend.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get course")
	defer cancel()

	c, err := h.API.Courses.Get(ctx, auth.Token(r), id)
	if err != nil {
		h.Act.Fail(w, r, err, "Course not found.", "/courses")
		return
	}
	fd := formFromCourse(c)
	fd.IsEdit = true
	h.renderForm(w, r, fd, "")
}

// HandleEdit processes the edit form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/courses/"+id)
		return
	}

	in, fd, msg := parseForm(r)
	fd.ID, fd.IsEdit = id, true
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Course updated.",
		Failure:  "Failed to update course.",
		Redirect: "/courses/" + id,
		Audit:    &actions.Audit{Event: audit.EventCourseUpdated, Resource: "course", ResourceID: id},
	}, func(ctx context.Context) error {
		_, err := h.API.Courses.Update(ctx, auth.Token(r), id, in.model())
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
