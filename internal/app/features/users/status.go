// internal/app/features/users/status.go
package users

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

var usersBackURL = navigation.BackURLOptions{
	AllowedPrefix: "/users",
	Fallback:      "/users",
}

// HandleStatus handles POST /users/{id}/status to block or unblock a
// learner. A block may carry a reason that the backend shows the learner.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, usersBackURL)
	in := models.StatusUpdate{
		Status: formutil.Trimmed(r, "status"),
		Reason: htmlsanitize.StripTags(formutil.Trimmed(r, "reason")),
	}

	var success string
	switch in.Status {
	case models.UserBlocked:
		success = "User blocked."
	case models.UserActive:
		success = "User unblocked."
		in.Reason = ""
	default:
		h.Act.Reject(w, r, "Unknown user status.", back)
		return
	}

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  success,
		Failure:  "Failed to update user.",
		Redirect: back,
		Events:   []string{"users:refresh"},
		Audit: &actions.Audit{
			Event: audit.EventUserStatusChanged, Resource: "user", ResourceID: id,
			Details: map[string]string{"status": in.Status, "reason": in.Reason},
		},
	}, func(ctx context.Context) error {
		return h.API.Users.SetStatus(ctx, auth.Token(r), id, in)
	})
}
