// internal/app/features/assignments/new.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeNew renders the "New Assignment" form, preselecting ?course=.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{CourseID: query.Get(r, "course")}, "")
}

// HandleCreate processes the New Assignment form submission.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/assignments")
		return
	}

	in, fd, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Assignment created.",
		Failure:  "Failed to create assignment.",
		Redirect: "/assignments",
		Audit: &actions.Audit{
			Event: audit.EventAssignmentCreated, Resource: "assignment",
			Details: map[string]string{"course": in.CourseID, "title": in.Title},
		},
	}, func(ctx context.Context) error {
		_, err := h.API.Assignments.Create(ctx, auth.Token(r), in.model())
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
