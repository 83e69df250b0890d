// internal/app/features/notifications/send.go
package notifications

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/inputval"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

const maxMessageRunes = 5000

type notificationInput struct {
	Title    string `validate:"required,max=150" label:"Title"`
	Message  string `validate:"required" label:"Message"`
	Audience string `validate:"required,oneof=all students instructors" label:"Audience"`
	Type     string `validate:"required,oneof=info warning promo" label:"Type"`
}

func parseForm(r *http.Request) (models.NotificationInput, formData, string) {
	fd := formData{
		Title:    formutil.Trimmed(r, "title"),
		Message:  formutil.Trimmed(r, "message"),
		Audience: formutil.Trimmed(r, "audience"),
		Type:     formutil.Trimmed(r, "type"),
	}
	in := notificationInput{
		Title:    htmlsanitize.StripTags(fd.Title),
		Message:  htmlsanitize.Sanitize(fd.Message),
		Audience: fd.Audience,
		Type:     fd.Type,
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return models.NotificationInput{}, fd, res.First()
	}
	if strings.TrimSpace(htmlsanitize.StripTags(in.Message)) == "" {
		return models.NotificationInput{}, fd, "Message is required."
	}
	if utf8.RuneCountInString(in.Message) > maxMessageRunes {
		return models.NotificationInput{}, fd, "Message is too long."
	}
	return models.NotificationInput(in), fd, ""
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, fd formData, msg string) {
	if fd.Audience == "" {
		fd.Audience = models.AudienceAll
	}
	if fd.Type == "" {
		fd.Type = models.NotificationInfo
	}
	fd.AudienceOptions = format.Options(models.NotificationAudiences, fd.Audience)
	fd.TypeOptions = format.Options(models.NotificationTypes, fd.Type)
	formutil.SetBase(&fd.Base, w, r, "Send Notification", "/notifications")
	fd.SetError(msg)
	templates.Render(w, r, "notification_form", fd)
}

// ServeNew renders the compose form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{}, "")
}

// HandleSend broadcasts a notification. Sending cannot be undone, so the
// compose form asks for confirmation before it posts.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/notifications")
		return
	}

	in, fd, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Notification sent.",
		Failure:  "Failed to send notification.",
		Redirect: "/notifications",
		Audit: &actions.Audit{
			Event: audit.EventNotificationSent, Resource: "notification",
			Details: map[string]string{"title": in.Title, "audience": in.Audience, "type": in.Type},
		},
	}, func(ctx context.Context) error {
		_, err := h.API.Notifications.Send(ctx, auth.Token(r), in)
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
