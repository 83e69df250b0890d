// internal/app/features/courses/delete.go
package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// HandleDelete handles POST /courses/{id}/delete. The backend removes the
// course's modules, lessons and enrollments with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Course deleted.",
		Failure:  "Failed to delete course.",
		Redirect: "/courses",
		Back:     "/courses/" + id,
		Events:   []string{"courses:refresh"},
		Audit:    &actions.Audit{Event: audit.EventCourseDeleted, Resource: "course", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Courses.Delete(ctx, auth.Token(r), id)
	})
}
