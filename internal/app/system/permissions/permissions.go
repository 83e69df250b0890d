// Package permissions holds the static role → route table that decides which
// dashboard sections an admin may open. Route guards, the sidebar and the
// feature handlers all consult this table; nothing else grants access.
package permissions

import (
	"errors"
	"slices"
	"strings"

	"github.com/dalemusser/learnadmin/internal/domain/models"
)

// Route identifies a dashboard section.
type Route string

const (
	Dashboard     Route = "dashboard"
	Courses       Route = "courses"
	Modules       Route = "modules"
	Lessons       Route = "lessons"
	Assignments   Route = "assignments"
	Enrollments   Route = "enrollments"
	Reviews       Route = "reviews"
	Users         Route = "users"
	Instructors   Route = "instructors"
	Tickets       Route = "tickets"
	Notifications Route = "notifications"
	Analytics     Route = "analytics"
	Admins        Route = "admins"
	AuditLog      Route = "auditlog"
	Uploads       Route = "uploads"
)

// ErrUnknownRole is returned by Parse for roles outside the table.
var ErrUnknownRole = errors.New("permissions: unknown role")

// AllRoutes lists every route identifier in sidebar order.
var AllRoutes = []Route{
	Dashboard, Courses, Modules, Lessons, Assignments, Enrollments, Reviews,
	Users, Instructors, Tickets, Notifications, Analytics, Admins, AuditLog, Uploads,
}

// Roles lists the known roles from least to most privileged.
var Roles = []string{models.RoleModerator, models.RoleAdmin, models.RoleSuperAdmin}

var table = map[string]map[Route]struct{}{
	models.RoleSuperAdmin: setOf(AllRoutes...),
	models.RoleAdmin: setOf(
		Dashboard, Courses, Modules, Lessons, Assignments, Enrollments, Reviews,
		Users, Instructors, Tickets, Notifications, Analytics, Uploads,
	),
	models.RoleModerator: setOf(
		Dashboard, Courses, Modules, Lessons, Assignments, Reviews, Tickets, Uploads,
	),
}

func setOf(routes ...Route) map[Route]struct{} {
	m := make(map[Route]struct{}, len(routes))
	for _, r := range routes {
		m[r] = struct{}{}
	}
	return m
}

// Normalize lowercases and trims role and folds the spellings the backend
// has used for the top role ("super-admin", "superadmin", "Super Admin").
func Normalize(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	switch strings.NewReplacer("-", "", "_", "", " ", "").Replace(r) {
	case "superadmin":
		return models.RoleSuperAdmin
	}
	return r
}

// Parse normalizes role and reports ErrUnknownRole when it is not in the table.
func Parse(role string) (string, error) {
	n := Normalize(role)
	if _, ok := table[n]; !ok {
		return "", ErrUnknownRole
	}
	return n, nil
}

// GetAccessibleRoutes returns the routes role may open, in AllRoutes order.
// Unknown roles get an empty (non-nil) slice. The result is a fresh copy.
func GetAccessibleRoutes(role string) []Route {
	allowed := table[Normalize(role)]
	out := make([]Route, 0, len(allowed))
	for _, r := range AllRoutes {
		if _, ok := allowed[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// CanAccess reports whether role may open route.
func CanAccess(role string, route Route) bool {
	_, ok := table[Normalize(role)][route]
	return ok
}

// Rank orders roles by privilege; unknown roles rank 0.
func Rank(role string) int {
	return slices.Index(Roles, Normalize(role)) + 1
}

// NavItem is one sidebar entry.
type NavItem struct {
	Route Route
	Label string
	Path  string
}

var navLabels = map[Route]string{
	Dashboard:     "Dashboard",
	Courses:       "Courses",
	Modules:       "Modules",
	Lessons:       "Lessons",
	Assignments:   "Assignments",
	Enrollments:   "Enrollments",
	Reviews:       "Reviews",
	Users:         "Students",
	Instructors:   "Instructors",
	Tickets:       "Support",
	Notifications: "Notifications",
	Analytics:     "Analytics",
	Admins:        "Admins",
	AuditLog:      "Audit Log",
}

// Nav returns the sidebar entries for role. Uploads has no page of its own
// and is left out.
func Nav(role string) []NavItem {
	var items []NavItem
	for _, r := range GetAccessibleRoutes(role) {
		label, ok := navLabels[r]
		if !ok {
			continue
		}
		items = append(items, NavItem{Route: r, Label: label, Path: "/" + string(r)})
	}
	return items
}
