// internal/app/features/admins/manage.go
package admins

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

var errLastSuper = errors.New("would leave no super admin")

var adminMessages = map[error]string{
	errLastSuper: "At least one super admin must remain.",
}

func isSelf(r *http.Request, id string) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.ID == id
}

// leavesNoSuperAdmin reports whether removing id from the super admins (by
// demotion or deletion) would leave none.
func leavesNoSuperAdmin(all []models.Admin, id string) bool {
	var target models.Admin
	supers := 0
	for _, a := range all {
		if permissions.Normalize(a.Role) == models.RoleSuperAdmin {
			supers++
		}
		if a.ID == id {
			target = a
		}
	}
	return permissions.Normalize(target.Role) == models.RoleSuperAdmin && supers <= 1
}

func (h *Handler) guardLastSuper(ctx context.Context, token, id string) error {
	all, err := h.API.Admins.List(ctx, token)
	if err != nil {
		return err
	}
	if leavesNoSuperAdmin(all, id) {
		return errLastSuper
	}
	return nil
}

// HandleRole handles POST /admins/{id}/role.
func (h *Handler) HandleRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if isSelf(r, id) {
		h.Act.Reject(w, r, "You can't change your own role. Ask another super admin.", "/admins")
		return
	}
	role, err := permissions.Parse(formutil.Trimmed(r, "role"))
	if err != nil {
		h.Act.Reject(w, r, "Unknown role.", "/admins")
		return
	}

	token := auth.Token(r)
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Role updated.",
		Failure:  "Failed to update role.",
		Redirect: "/admins",
		Events:   []string{"admins:refresh"},
		Messages: adminMessages,
		Audit: &actions.Audit{
			Event: audit.EventAdminRoleChanged, Resource: "admin", ResourceID: id,
			Details: map[string]string{"role": role},
		},
	}, func(ctx context.Context) error {
		if role != models.RoleSuperAdmin {
			if err := h.guardLastSuper(ctx, token, id); err != nil {
				return err
			}
		}
		return h.API.Admins.SetRole(ctx, token, id, role)
	})
}

// HandleDelete handles POST /admins/{id}/delete.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if isSelf(r, id) {
		h.Act.Reject(w, r, "You can't delete your own account. Ask another super admin.", "/admins")
		return
	}

	token := auth.Token(r)
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Admin deleted.",
		Failure:  "Failed to delete admin.",
		Redirect: "/admins",
		Events:   []string{"admins:refresh"},
		Messages: adminMessages,
		Audit:    &actions.Audit{Event: audit.EventAdminDeleted, Resource: "admin", ResourceID: id},
	}, func(ctx context.Context) error {
		if err := h.guardLastSuper(ctx, token, id); err != nil {
			return err
		}
		return h.API.Admins.Delete(ctx, token, id)
	})
}
