// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
	"github.com/dalemusser/learnadmin/internal/app/system/toast"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in the header and page titles.
const SiteName = "LearnAdmin"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := listData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Courses", "/dashboard"),
//	}
type BaseVM struct {
	SiteName string

	// Signed-in admin (from auth middleware)
	IsLoggedIn bool
	Role       string
	RoleLabel  string
	UserName   string
	UserEmail  string

	// Sidebar entries allowed for Role
	Nav []permissions.NavItem

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string

	// One-shot notifications queued by the previous request plus any added
	// while building this page.
	Toasts []toast.Toast
}

var sessions toast.SessionStore

// Init sets the session store toasts are read from.
// Call this once at startup from bootstrap.
func Init(store toast.SessionStore) {
	sessions = store
}

// NewBaseVM creates a fully populated BaseVM for a page and consumes any
// queued toasts.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
	if u, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.Role = u.Role
		vm.RoleLabel = RoleLabel(u.Role)
		vm.UserName = u.Name
		vm.UserEmail = u.Email
		vm.Nav = permissions.Nav(u.Role)
	}
	if w != nil {
		vm.Toasts = toast.Pop(w, r, sessions)
	}
	return vm
}

// AddToast appends t to the toasts rendered with this page.
func (vm *BaseVM) AddToast(t toast.Toast) {
	vm.Toasts = append(vm.Toasts, t)
}

// AddError appends an error toast.
func (vm *BaseVM) AddError(msg string) {
	vm.AddToast(toast.Error(msg))
}

// Can reports whether the signed-in admin may open route. Templates use it
// to hide buttons the guards would reject.
func (vm BaseVM) Can(route string) bool {
	return vm.IsLoggedIn && permissions.CanAccess(vm.Role, permissions.Route(route))
}

// RoleLabel is the display form of a normalized role.
func RoleLabel(role string) string {
	switch permissions.Normalize(role) {
	case "super_admin":
		return "Super Admin"
	case "admin":
		return "Admin"
	case "moderator":
		return "Moderator"
	}
	return role
}
