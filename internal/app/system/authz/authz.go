// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

// UserCtx returns the admin's normalized role, display name, backend ID and
// a found flag. Without a signed-in admin it returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role, name, id string, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ID == "" {
		return "visitor", "", "", false
	}
	return u.Role, u.Name, u.ID, true
}

// CanAccess reports whether the current admin may open route.
func CanAccess(r *http.Request, route permissions.Route) bool {
	role, _, _, ok := UserCtx(r)
	return ok && permissions.CanAccess(role, route)
}

// IsSuperAdmin reports whether the current admin holds the top role.
func IsSuperAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleSuperAdmin
}
