// internal/app/features/users/view.go
package users

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeView shows a learner and, for roles that can see enrollments, the
// courses they are enrolled in.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := auth.Token(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get user")
	defer cancel()

	u, err := h.API.Users.Get(ctx, token, id)
	if err != nil {
		h.Act.Fail(w, r, err, "User not found.", "/users")
		return
	}

	data := viewData{
		BaseVM:  viewdata.NewBaseVM(w, r, u.Name, "/users"),
		userRow: row(u),
		Avatar:  u.Avatar,
	}
	if data.Can(string(permissions.Enrollments)) {
		all, err := h.API.Enrollments.List(ctx, token)
		if err != nil {
			h.Log.Warn("load user enrollments failed", zap.String("user", id), zap.Error(err))
			data.AddError("Could not load enrollments.")
		}
		data.Enrollments = enrollmentsOf(all, id)
	}
	templates.Render(w, r, "user_view", data)
}

func enrollmentsOf(all []models.Enrollment, userID string) []enrollmentRow {
	var out []enrollmentRow
	for _, e := range all {
		if e.StudentID != userID {
			continue
		}
		out = append(out, enrollmentRow{
			ID:       e.ID,
			Course:   e.CourseTitle,
			Status:   e.Status,
			Progress: format.Percent(e.Progress),
			Enrolled: format.Date(e.EnrolledAt),
		})
	}
	return out
}
