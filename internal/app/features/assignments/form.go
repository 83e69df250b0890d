// internal/app/features/assignments/form.go
package assignments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/inputval"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type assignmentInput struct {
	CourseID    string `validate:"required" label:"Course"`
	Title       string `validate:"required,max=200" label:"Title"`
	Description string `validate:"max=10000" label:"Description"`
	MaxScore    int    `validate:"gt=0,lte=1000" label:"Max score"`
	Status      string `validate:"required,oneof=active closed" label:"Status"`
	DueDate     *time.Time
}

func (in assignmentInput) model() models.AssignmentInput {
	return models.AssignmentInput{
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		MaxScore:    in.MaxScore,
		Status:      in.Status,
	}
}

func parseForm(r *http.Request) (assignmentInput, formData, string) {
	fd := formData{
		CourseID:    formutil.Trimmed(r, "course"),
		Title:       htmlsanitize.StripTags(formutil.Trimmed(r, "title")),
		Description: htmlsanitize.Sanitize(r.FormValue("description")),
		DueDate:     formutil.Trimmed(r, "due_date"),
		MaxScore:    formutil.Trimmed(r, "max_score"),
		Status:      formutil.Trimmed(r, "status"),
	}
	in := assignmentInput{
		CourseID:    fd.CourseID,
		Title:       fd.Title,
		Description: fd.Description,
		Status:      fd.Status,
	}
	var ok bool
	if in.MaxScore, ok = formutil.Int(r, "max_score", 100); !ok {
		return in, fd, "Max score must be a whole number."
	}
	if fd.DueDate != "" {
		// Due at the end of the chosen day, UTC.
		d, err := time.Parse(dateLayout, fd.DueDate)
		if err != nil {
			return in, fd, "Due date must be a valid date."
		}
		due := d.Add(24*time.Hour - time.Second)
		in.DueDate = &due
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return in, fd, res.First()
	}
	return in, fd, ""
}

func formFromAssignment(a models.Assignment) formData {
	fd := formData{
		ID:          a.ID,
		CourseID:    a.CourseID,
		Title:       a.Title,
		Description: a.Description,
		MaxScore:    strconv.Itoa(a.MaxScore),
		Status:      a.Status,
	}
	if a.DueDate != nil {
		fd.DueDate = a.DueDate.UTC().Format(dateLayout)
	}
	return fd
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, fd formData, msg string) {
	title, back := "New Assignment", "/assignments"
	fd.Action = "/assignments"
	if fd.IsEdit {
		title, back = "Edit Assignment", "/assignments/"+fd.ID
		fd.Action = "/assignments/" + fd.ID + "/edit"
	}
	if fd.Status == "" {
		fd.Status = models.AssignmentActive
	}
	if fd.MaxScore == "" {
		fd.MaxScore = "100"
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "assignment form courses")
	defer cancel()
	courses, err := h.API.Courses.List(ctx, auth.Token(r))
	if err != nil {
		h.Log.Warn("load courses for assignment form failed", zap.Error(err))
		if msg == "" {
			msg = "Could not load the course list."
		}
	}
	fd.CourseOptions = format.CourseOptions(courses, fd.CourseID)
	fd.StatusOptions = format.Options(models.AssignmentStatuses, fd.Status)

	formutil.SetBase(&fd.Base, w, r, title, back)
	fd.SetError(msg)
	templates.Render(w, r, "assignment_form", fd)
}
