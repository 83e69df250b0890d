// internal/app/features/lessons/edit.go
package lessons

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get lesson")
	defer cancel()

	l, err := h.API.Lessons.Get(ctx, auth.Token(r), id)
	if err != nil {
		h.Act.Fail(w, r, err, "Lesson not found.", navigation.SafeBackURL(r, navigation.LessonsBackURL))
		return
	}
	fd := formFromLesson(l)
	fd.IsEdit = true
	h.renderForm(w, r, fd, "")
}

func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/lessons/"+id)
		return
	}

	in, fd, msg := parseForm(r)
	fd.ID, fd.IsEdit = id, true
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	token := auth.Token(r)
	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Lesson updated.",
		Failure:  "Failed to update lesson.",
		Redirect: "/lessons/" + id,
		Audit:    &actions.Audit{Event: audit.EventLessonUpdated, Resource: "lesson", ResourceID: id},
	}, func(ctx context.Context) error {
		m, err := h.API.Modules.Get(ctx, token, in.ModuleID)
		if err != nil {
			return err
		}
		_, err = h.API.Lessons.Update(ctx, token, id, in.model(m.CourseID))
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}

func nextOrder(lessons []models.Lesson) int {
	next := 1
	for _, l := range lessons {
		if l.Order >= next {
			next = l.Order + 1
		}
	}
	return next
}
