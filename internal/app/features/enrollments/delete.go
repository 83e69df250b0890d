// internal/app/features/enrollments/delete.go
package enrollments

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/go-chi/chi/v5"
)

// HandleDelete handles POST /enrollments/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Enrollment removed.",
		Failure:  "Failed to remove enrollment.",
		Redirect: navigation.SafeBackURL(r, navigation.EnrollmentsBackURL),
		Back:     "/enrollments/" + id,
		Events:   []string{"enrollments:refresh"},
		Audit:    &actions.Audit{Event: audit.EventEnrollmentDeleted, Resource: "enrollment", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Enrollments.Delete(ctx, auth.Token(r), id)
	})
}
