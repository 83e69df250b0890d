// internal/app/features/enrollments/update.go
package enrollments

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleUpdate handles POST /enrollments/{id}/status. Either field may be
// left blank to keep its current value.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/enrollments/" + id
	in := models.EnrollmentUpdate{
		Status:        formutil.Trimmed(r, "status"),
		PaymentStatus: formutil.Trimmed(r, "payment_status"),
	}

	if msg := validateUpdate(in); msg != "" {
		h.Act.Fail(w, r, errors.New(msg), msg, back)
		return
	}

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Enrollment updated.",
		Failure:  "Failed to update enrollment.",
		Redirect: back,
		Events:   []string{"enrollments:refresh"},
		Audit: &actions.Audit{
			Event: audit.EventEnrollmentUpdated, Resource: "enrollment", ResourceID: id,
			Details: map[string]string{"status": in.Status, "payment_status": in.PaymentStatus},
		},
	}, func(ctx context.Context) error {
		_, err := h.API.Enrollments.Update(ctx, auth.Token(r), id, in)
		return err
	})
}

func validateUpdate(in models.EnrollmentUpdate) string {
	switch {
	case in.Status == "" && in.PaymentStatus == "":
		return "Choose a status or payment status."
	case in.Status != "" && !slices.Contains(models.EnrollmentStatuses, in.Status):
		return "Unknown enrollment status."
	case in.PaymentStatus != "" && !slices.Contains(models.PaymentStatuses, in.PaymentStatus):
		return "Unknown payment status."
	}
	return ""
}
