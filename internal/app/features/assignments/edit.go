// internal/app/features/assignments/edit.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get assignment")
	defer cancel()

	a, err := h.API.Assignments.Get(ctx, auth.Token(r), id)
	if err != nil {
		h.Act.Fail(w, r, err, "Assignment not found.", "/assignments")
		return
	}
	fd := formFromAssignment(a)
	fd.IsEdit = true
	h.renderForm(w, r, fd, "")
}

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/assignments/"+id)
		return
	}

	in, fd, msg := parseForm(r)
	fd.ID, fd.IsEdit = id, true
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Assignment updated.",
		Failure:  "Failed to update assignment.",
		Redirect: "/assignments/" + id,
		Audit:    &actions.Audit{Event: audit.EventAssignmentUpdated, Resource: "assignment", ResourceID: id},
	}, func(ctx context.Context) error {
		_, err := h.API.Assignments.Update(ctx, auth.Token(r), id, in.model())
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
