// internal/app/features/lessons/new.go
package lessons

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeNew renders the "New Lesson" form, preselecting ?module=.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{ModuleID: query.Get(r, "module")}, "")
}

// HandleCreate adds a lesson. The course is taken from the chosen module and
// a blank order appends the lesson to the module.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/lessons")
		return
	}

	in, fd, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	token := auth.Token(r)
	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Lesson created.",
		Failure:  "Failed to create lesson.",
		Redirect: listURL(in.ModuleID),
		Audit: &actions.Audit{
			Event: audit.EventLessonCreated, Resource: "lesson",
			Details: map[string]string{"module": in.ModuleID, "type": in.Type},
		},
	}, func(ctx context.Context) error {
		m, err := h.API.Modules.Get(ctx, token, in.ModuleID)
		if err != nil {
			return err
		}
		if in.Order == 0 {
			existing, err := h.API.Lessons.List(ctx, token, in.ModuleID)
			if err != nil {
				return err
			}
			in.Order = nextOrder(existing)
		}
		_, err = h.API.Lessons.Create(ctx, token, in.model(m.CourseID))
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
