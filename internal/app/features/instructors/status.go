// internal/app/features/instructors/status.go
package instructors

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

var instructorsBackURL = navigation.BackURLOptions{
	AllowedPrefix: "/instructors",
	Fallback:      "/instructors",
}

// HandleStatus handles POST /instructors/{id}/status. Instructors can be
// approved or suspended; an application is never moved back to pending.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, instructorsBackURL)
	in := models.StatusUpdate{
		Status: formutil.Trimmed(r, "status"),
		Reason: htmlsanitize.StripTags(formutil.Trimmed(r, "reason")),
	}

	var success string
	switch in.Status {
	case models.InstructorApproved:
		success = "Instructor approved."
		in.Reason = ""
	case models.InstructorSuspended:
		success = "Instructor suspended."
	default:
		h.Act.Reject(w, r, "Unknown instructor status.", back)
		return
	}

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  success,
		Failure:  "Failed to update instructor.",
		Redirect: back,
		Events:   []string{"instructors:refresh"},
		Audit: &actions.Audit{
			Event: audit.EventInstructorStatus, Resource: "instructor", ResourceID: id,
			Details: map[string]string{"status": in.Status, "reason": in.Reason},
		},
	}, func(ctx context.Context) error {
		return h.API.Instructors.SetStatus(ctx, auth.Token(r), id, in)
	})
}
