// internal/app/features/lessons/delete.go
package lessons

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/go-chi/chi/v5"
)

// HandleDelete handles POST /lessons/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.LessonsBackURL)
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Lesson deleted.",
		Failure:  "Failed to delete lesson.",
		Redirect: back,
		Back:     back,
		Events:   []string{"lessons:refresh"},
		Audit:    &actions.Audit{Event: audit.EventLessonDeleted, Resource: "lesson", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Lessons.Delete(ctx, auth.Token(r), id)
	})
}
