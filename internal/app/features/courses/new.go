// internal/app/features/courses/new.go
package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
)

// ServeNew renders the "New Course" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{}, "")
}

// HandleCreate processes the New Course form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/courses")
		return
	}

	in, fd, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Course created.",
		Failure:  "Failed to create course.",
		Redirect: "/courses",
		Audit:    &actions.Audit{Event: audit.EventCourseCreated, Resource: "course", Details: map[string]string{"title": in.Title}},
	}, func(ctx context.Context) error {
		_, err := h.API.Courses.Create(ctx, auth.Token(r), in.model())
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
