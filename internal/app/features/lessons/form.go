// internal/app/features/lessons/form.go
package lessons

import (
	"net/http"
	"net/url"
	"strconv"

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

type lessonInput struct {
	ModuleID    string `validate:"required" label:"Module"`
	Title       string `validate:"required,max=200" label:"Title"`
	Type        string `validate:"required,oneof=video article document" label:"Type"`
	Content     string `validate:"max=100000" label:"Content"`
	VideoURL    string `validate:"omitempty,httpurl" label:"Video URL"`
	DocumentURL string `validate:"omitempty,httpurl" label:"Document URL"`
	Duration    int    `validate:"gte=0,lte=1440" label:"Duration"`
	Order       int    `validate:"gte=0" label:"Order"`
	IsPreview   bool
}

func (in lessonInput) model(courseID string) models.LessonInput {
	li := models.LessonInput{
		CourseID:  courseID,
		ModuleID:  in.ModuleID,
		Title:     in.Title,
		Type:      in.Type,
		Content:   in.Content,
		Duration:  in.Duration,
		Order:     in.Order,
		IsPreview: in.IsPreview,
	}
	// Only the URL matching the type is kept.
	switch in.Type {
	case models.LessonTypeVideo:
		li.VideoURL = in.VideoURL
	case models.LessonTypeDocument:
		li.DocumentURL = in.DocumentURL
	}
	return li
}

// parseForm reads the lesson form. Content is sanitized here so both the
// backend and any re-rendered preview only ever see the cleaned HTML.
func parseForm(r *http.Request) (lessonInput, formData, string) {
	fd := formData{
		ModuleID:    formutil.Trimmed(r, "module"),
		Title:       htmlsanitize.StripTags(formutil.Trimmed(r, "title")),
		Type:        formutil.Trimmed(r, "type"),
		Content:     htmlsanitize.Sanitize(r.FormValue("content")),
		VideoURL:    formutil.Trimmed(r, "video_url"),
		DocumentURL: formutil.Trimmed(r, "document_url"),
		Duration:    formutil.Trimmed(r, "duration"),
		Order:       formutil.Trimmed(r, "order"),
		IsPreview:   formutil.Checkbox(r, "is_preview"),
	}
	in := lessonInput{
		ModuleID:    fd.ModuleID,
		Title:       fd.Title,
		Type:        fd.Type,
		Content:     fd.Content,
		VideoURL:    fd.VideoURL,
		DocumentURL: fd.DocumentURL,
		IsPreview:   fd.IsPreview,
	}
	var ok bool
	if in.Duration, ok = formutil.Int(r, "duration", 0); !ok {
		return in, fd, "Duration must be a whole number of minutes."
	}
	if in.Order, ok = formutil.Int(r, "order", 0); !ok {
		return in, fd, "Order must be a whole number."
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return in, fd, res.First()
	}
	switch {
	case in.Type == models.LessonTypeVideo && in.VideoURL == "":
		return in, fd, "Video lessons need a video URL."
	case in.Type == models.LessonTypeDocument && in.DocumentURL == "":
		return in, fd, "Document lessons need a document URL."
	case in.Type == models.LessonTypeArticle && htmlsanitize.StripTags(in.Content) == "":
		return in, fd, "Article lessons need some content."
	}
	return in, fd, ""
}

func formFromLesson(l models.Lesson) formData {
	return formData{
		ID:          l.ID,
		ModuleID:    l.ModuleID,
		Title:       l.Title,
		Type:        l.Type,
		Content:     htmlsanitize.Sanitize(l.Content),
		VideoURL:    l.VideoURL,
		DocumentURL: l.DocumentURL,
		Duration:    strconv.Itoa(l.Duration),
		Order:       strconv.Itoa(l.Order),
		IsPreview:   l.IsPreview,
	}
}

func listURL(moduleID string) string {
	if moduleID == "" {
		return "/lessons"
	}
	return "/lessons?module=" + url.QueryEscape(moduleID)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, fd formData, msg string) {
	title := "New Lesson"
	fd.Action = "/lessons"
	if fd.IsEdit {
		title = "Edit Lesson"
		fd.Action = "/lessons/" + fd.ID + "/edit"
	}
	if fd.Type == "" {
		fd.Type = models.LessonTypeVideo
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "lesson form modules")
	defer cancel()
	modules, err := h.API.Modules.List(ctx, auth.Token(r), "")
	if err != nil {
		h.Log.Warn("load modules for lesson form failed", zap.Error(err))
		if msg == "" {
			msg = "Could not load the module list."
		}
	}
	fd.ModuleOptions = moduleOptions(modules, fd.ModuleID)
	fd.TypeOptions = format.Options(models.LessonTypes, fd.Type)

	formutil.SetBase(&fd.Base, w, r, title, listURL(fd.ModuleID))
	fd.SetError(msg)
	templates.Render(w, r, "lesson_form", fd)
}
