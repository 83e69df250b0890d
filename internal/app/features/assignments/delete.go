// internal/app/features/assignments/delete.go
package assignments

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/go-chi/chi/v5"
)

// HandleDelete handles POST /assignments/{id}/delete. Submissions are
// removed by the backend.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.AssignmentsBackURL)
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Assignment deleted.",
		Failure:  "Failed to delete assignment.",
		Redirect: back,
		Back:     back,
		Events:   []string{"assignments:refresh"},
		Audit:    &actions.Audit{Event: audit.EventAssignmentDeleted, Resource: "assignment", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Assignments.Delete(ctx, auth.Token(r), id)
	})
}
