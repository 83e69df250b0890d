// internal/app/features/enrollments/view.go
package enrollments

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeView shows one enrollment with the status and payment form.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get enrollment")
	defer cancel()

	e, err := h.API.Enrollments.Get(ctx, auth.Token(r), id)
	if err != nil {
		h.Act.Fail(w, r, err, "Enrollment not found.", "/enrollments")
		return
	}
	templates.Render(w, r, "enrollment_view", viewData{
		BaseVM:         viewdata.NewBaseVM(w, r, e.StudentName+" · "+e.CourseTitle, navigation.SafeBackURL(r, navigation.EnrollmentsBackURL)),
		enrollmentRow:  row(e),
		StudentID:      e.StudentID,
		Completed:      format.DatePtr(e.CompletedAt),
		StatusOptions:  format.Options(models.EnrollmentStatuses, e.Status),
		PaymentOptions: format.Options(models.PaymentStatuses, e.PaymentStatus),
	})
}
