// internal/app/features/courses/publish.go
package courses

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/go-chi/chi/v5"
)

// HandlePublish handles POST /courses/{id}/publish with published=true|false.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	publish := formutil.Checkbox(r, "published")

	success := "Course unpublished."
	if publish {
		success = "Course published."
	}
	back := navigation.SafeBackURL(r, navigation.CoursesBackURL)

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  success,
		Failure:  "Failed to change publication.",
		Redirect: back,
		Events:   []string{"courses:refresh"},
		Audit: &actions.Audit{
			Event: audit.EventCoursePublished, Resource: "course", ResourceID: id,
			Details: map[string]string{"published": strconv.FormatBool(publish)},
		},
	}, func(ctx context.Context) error {
		return h.API.Courses.SetPublished(ctx, auth.Token(r), id, publish)
	})
}
