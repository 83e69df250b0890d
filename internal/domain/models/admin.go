// internal/domain/models/admin.go
package models

import "time"

// Admin roles. Role strings arrive from the backend and are normalized by the
// permissions package before any comparison.
const (
	RoleModerator  = "moderator"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin is the signed-in dashboard operator. It is what the backend returns
// from /admin/login and /admin/profile and what the session stores under
// the adminData key.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}

// LoginResult is the data payload of a successful /admin/login call.
type LoginResult struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// Credentials is the /admin/login body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminInput is the body for creating a dashboard operator.
type AdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RoleUpdate is the PATCH body for changing an operator's role.
type RoleUpdate struct {
	Role string `json:"role"`
}
