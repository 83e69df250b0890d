// internal/app/features/reviews/moderate.go
package reviews

import (
	"context"
	"net/http"
	"slices"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

var reviewsBackURL = navigation.BackURLOptions{
	AllowedPrefix: "/reviews",
	Fallback:      "/reviews",
}

var successText = map[string]string{
	models.ReviewApproved: "Review approved.",
	models.ReviewHidden:   "Review hidden.",
	models.ReviewPending:  "Review returned to pending.",
}

// HandleStatus handles POST /reviews/{id}/status (approve, hide or
// return to pending).
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := formutil.Trimmed(r, "status")
	back := navigation.SafeBackURL(r, reviewsBackURL)

	if !slices.Contains(models.ReviewStatuses, status) {
		h.Act.Reject(w, r, "Unknown review status.", back)
		return
	}

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  successText[status],
		Failure:  "Failed to update review.",
		Redirect: back,
		Events:   []string{"reviews:refresh"},
		Audit: &actions.Audit{
			Event: audit.EventReviewModerated, Resource: "review", ResourceID: id,
			Details: map[string]string{"status": status},
		},
	}, func(ctx context.Context) error {
		return h.API.Reviews.SetStatus(ctx, auth.Token(r), id, status)
	})
}

// HandleDelete handles POST /reviews/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, reviewsBackURL)
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Review deleted.",
		Failure:  "Failed to delete review.",
		Redirect: back,
		Events:   []string{"reviews:refresh"},
		Audit:    &actions.Audit{Event: audit.EventReviewDeleted, Resource: "review", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Reviews.Delete(ctx, auth.Token(r), id)
	})
}
