// internal/app/features/modules/edit.go
package modules

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeEdit renders the edit form prefilled from the backend.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get module")
	defer cancel()

	m, err := h.API.Modules.Get(ctx, auth.Token(r), id)
	if err != nil {
		h.Act.Fail(w, r, err, "Module not found.", navigation.SafeBackURL(r, navigation.ModulesBackURL))
		return
	}
	fd := formFromModule(m)
	fd.IsEdit = true
	h.renderForm(w, r, fd, "")
}

// HandleEdit processes the edit form submission.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/modules")
		return
	}

	in, fd, msg := parseForm(r)
	fd.ID, fd.IsEdit = id, true
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Module updated.",
		Failure:  "Failed to update module.",
		Redirect: listURL(in.CourseID),
		Audit:    &actions.Audit{Event: audit.EventModuleUpdated, Resource: "module", ResourceID: id},
	}, func(ctx context.Context) error {
		_, err := h.API.Modules.Update(ctx, auth.Token(r), id, in.model())
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
