// internal/app/features/modules/form.go
package modules

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/inputval"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type moduleInput struct {
	CourseID    string `validate:"required" label:"Course"`
	Title       string `validate:"required,max=200" label:"Title"`
	Description string `validate:"max=2000" label:"Description"`
	Order       int    `validate:"gte=0,lte=1000" label:"Order"`
}

func (in moduleInput) model() models.ModuleInput {
	return models.ModuleInput{
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		Order:       in.Order,
	}
}

func parseForm(r *http.Request) (moduleInput, formData, string) {
	fd := formData{
		CourseID:    formutil.Trimmed(r, "course"),
		Title:       formutil.Trimmed(r, "title"),
		Description: formutil.Trimmed(r, "description"),
		Order:       formutil.Trimmed(r, "order"),
	}
	in := moduleInput{
		CourseID:    fd.CourseID,
		Title:       fd.Title,
		Description: fd.Description,
	}
	var ok bool
	if in.Order, ok = formutil.Int(r, "order", 0); !ok {
		return in, fd, "Order must be a whole number."
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return in, fd, res.First()
	}
	return in, fd, ""
}

func formFromModule(m models.Module) formData {
	return formData{
		ID:          m.ID,
		CourseID:    m.CourseID,
		Title:       m.Title,
		Description: m.Description,
		Order:       strconv.Itoa(m.Order),
	}
}

// listURL is the module list filtered to courseID.
func listURL(courseID string) string {
	if courseID == "" {
		return "/modules"
	}
	return "/modules?course=" + url.QueryEscape(courseID)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, fd formData, msg string) {
	title := "New Module"
	fd.Action = "/modules"
	if fd.IsEdit {
		title = "Edit Module"
		fd.Action = "/modules/" + fd.ID + "/edit"
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "module form courses")
	defer cancel()
	courses, err := h.API.Courses.List(ctx, auth.Token(r))
	if err != nil {
		// The select falls back to the bare ID; the form still posts.
		h.Log.Warn("load courses for module form failed", zap.Error(err))
		if msg == "" {
			msg = "Could not load the course list."
		}
	}
	fd.CourseOptions = format.CourseOptions(courses, fd.CourseID)
	if fd.CourseID != "" && len(fd.CourseOptions) == 0 {
		fd.CourseOptions = []format.Option{{Value: fd.CourseID, Label: fd.CourseID, Selected: true}}
	}

	formutil.SetBase(&fd.Base, w, r, title, listURL(fd.CourseID))
	fd.SetError(msg)
	templates.Render(w, r, "module_form", fd)
}

// nextOrder is one past the highest order index in the course.
func (h *Handler) nextOrder(ctx context.Context, token, courseID string) (int, error) {
	modules, err := h.API.Modules.List(ctx, token, courseID)
	if err != nil {
		return 0, err
	}
	next := 1
	for _, m := range modules {
		if m.Order >= next {
			next = m.Order + 1
		}
	}
	return next, nil
}
