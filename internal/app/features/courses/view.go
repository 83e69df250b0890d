// internal/app/features/courses/view.go
package courses

import (
	"net/http"
	"sort"

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

// ServeView handles GET /courses/{id}: the course details and, for roles
// that may open modules, its module outline.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u, _ := auth.CurrentUser(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "view course")
	defer cancel()

	c, err := h.API.Courses.Get(ctx, u.Token, id)
	if err != nil {
		h.Act.Fail(w, r, err, "Course not found.", "/courses")
		return
	}

	showModules := permissions.CanAccess(u.Role, permissions.Modules)
	var modules []models.Module
	var modulesErr string
	if showModules {
		modules, err = h.API.Modules.List(ctx, u.Token, id)
		if err != nil {
			msg, done := h.Act.ReadFailed(w, r, err, "Failed to load modules.")
			if done {
				return
			}
			modulesErr = msg
			h.Log.Warn("course modules unavailable", zap.String("course_id", id))
		}
	}

	data := detail(c)
	data.BaseVM = viewdata.NewBaseVM(w, r, c.Title, "/courses")
	data.ShowModules = showModules
	data.Modules = moduleRows(modules)
	if modulesErr != "" {
		data.AddError(modulesErr)
	}
	templates.Render(w, r, "course_view", data)
}

func detail(c models.Course) viewData {
	d := viewData{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Level:       format.Label(c.Level),
		Language:    c.Language,
		Instructor:  c.InstructorName,
		Price:       price(c.Price),
		Thumbnail:   c.Thumbnail,
		Status:      c.Status,
		IsPublished: c.IsPublished,
		Rating:      format.Decimal(c.Rating),
		Reviews:     format.Count(c.ReviewCount),
		Students:    format.Count(c.StudentCount),
		Duration:    format.Count(c.Duration) + " min",
		Tags:        c.Tags,
		Created:     format.Date(c.CreatedAt),
		Updated:     format.Date(c.UpdatedAt),
	}
	if c.DiscountPrice > 0 {
		d.Discount = format.Money(c.DiscountPrice)
	}
	return d
}

func moduleRows(modules []models.Module) []moduleRow {
	sorted := append([]models.Module(nil), modules...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	out := make([]moduleRow, 0, len(sorted))
	for _, m := range sorted {
		out = append(out, moduleRow{
			ID:      m.ID,
			Order:   m.Order,
			Title:   m.Title,
			Lessons: format.Count(m.LessonCount),
		})
	}
	return out
}
