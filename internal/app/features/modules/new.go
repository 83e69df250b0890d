// internal/app/features/modules/new.go
package modules

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeNew renders the "New Module" form, preselecting ?course=.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{CourseID: query.Get(r, "course")}, "")
}

// HandleCreate adds a module. A blank order appends it to the end of the
// course.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/modules")
		return
	}

	in, fd, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	token := auth.Token(r)
	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Module created.",
		Failure:  "Failed to create module.",
		Redirect: listURL(in.CourseID),
		Audit: &actions.Audit{
			Event: audit.EventModuleCreated, Resource: "module",
			Details: map[string]string{"course": in.CourseID, "title": in.Title},
		},
	}, func(ctx context.Context) error {
		if in.Order == 0 {
			next, err := h.nextOrder(ctx, token, in.CourseID)
			if err != nil {
				return err
			}
			in.Order = next
		}
		_, err := h.API.Modules.Create(ctx, token, in.model())
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
