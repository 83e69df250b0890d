// internal/app/features/admins/new.go
package admins

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/htmlsanitize"
	"github.com/dalemusser/learnadmin/internal/app/system/inputval"
	"github.com/dalemusser/learnadmin/internal/app/system/normalize"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type adminInput struct {
	Name     string `validate:"required,max=200" label:"Name"`
	Email    string `validate:"required,email,max=254" label:"Email"`
	Password string `validate:"required,min=8,max=128" label:"Password"`
	Role     string `validate:"required,oneof=moderator admin super_admin" label:"Role"`
}

func parseForm(r *http.Request) (models.AdminInput, formData, string) {
	fd := formData{
		Name:  normalize.Name(htmlsanitize.StripTags(r.FormValue("name"))),
		Email: normalize.Email(r.FormValue("email")),
		Role:  normalize.Role(r.FormValue("role")),
	}
	in := adminInput{
		Name:     fd.Name,
		Email:    fd.Email,
		Password: r.FormValue("password"),
		Role:     fd.Role,
	}
	if res := inputval.Validate(in); res.HasErrors() {
		return models.AdminInput{}, fd, res.First()
	}
	if in.Password != r.FormValue("confirm") {
		return models.AdminInput{}, fd, "Passwords do not match."
	}
	return models.AdminInput(in), fd, ""
}

// renderForm never echoes the password back.
func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, fd formData, msg string) {
	if fd.Role == "" {
		fd.Role = models.RoleModerator
	}
	fd.RoleOptions = roleOptions(fd.Role)
	formutil.SetBase(&fd.Base, w, r, "New Admin", "/admins")
	fd.SetError(msg)
	templates.Render(w, r, "admin_form", fd)
}

// ServeNew renders the "New Admin" form.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, formData{}, "")
}

// HandleCreate adds a dashboard operator.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/admins")
		return
	}

	in, fd, msg := parseForm(r)
	if msg != "" {
		h.renderForm(w, r, fd, msg)
		return
	}

	msg, handled := h.Act.Submit(w, r, actions.Spec{
		Success:  "Admin created.",
		Failure:  "Failed to create admin.",
		Redirect: "/admins",
		Audit: &actions.Audit{
			Event: audit.EventAdminCreated, Resource: "admin",
			Details: map[string]string{"email": in.Email, "role": in.Role},
		},
	}, func(ctx context.Context) error {
		_, err := h.API.Admins.Create(ctx, auth.Token(r), in)
		return err
	})
	if !handled {
		h.renderForm(w, r, fd, msg)
	}
}
