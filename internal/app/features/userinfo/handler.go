// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/authz"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
)

// Handler reports who is signed in to page scripts.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

type userInfo struct {
	IsAuthenticated bool                `json:"isAuthenticated"`
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Role            string              `json:"role"`
	SuperAdmin      bool                `json:"superAdmin"`
	CanUpload       bool                `json:"canUpload"`
	Routes          []permissions.Route `json:"routes"`
}

// ServeUserInfo handles GET /api/me.
//
//	{ "isAuthenticated": true, "id": "...", "name": "...", "email": "...",
//	  "role": "admin", "superAdmin": false, "canUpload": true,
//	  "routes": ["dashboard", "courses", ...] }
//
// Signed-out callers get isAuthenticated false, role "visitor" and no routes.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	role, name, id, ok := authz.UserCtx(r)
	info := userInfo{
		IsAuthenticated: ok,
		ID:              id,
		Name:            name,
		Role:            role,
		Routes:          []permissions.Route{},
	}
	if ok {
		if u, found := auth.CurrentUser(r); found {
			info.Email = u.Email
		}
		info.SuperAdmin = authz.IsSuperAdmin(r)
		info.CanUpload = authz.CanAccess(r, permissions.Uploads)
		info.Routes = permissions.GetAccessibleRoutes(role)
	}
	_ = json.NewEncoder(w).Encode(info)
}
