// internal/app/features/notifications/delete.go
package notifications

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// HandleDelete handles POST /notifications/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Notification deleted.",
		Failure:  "Failed to delete notification.",
		Redirect: "/notifications",
		Events:   []string{"notifications:refresh"},
		Audit:    &actions.Audit{Event: audit.EventNotificationDelete, Resource: "notification", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Notifications.Delete(ctx, auth.Token(r), id)
	})
}
