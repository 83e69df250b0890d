// Package backend bundles every API slice over one shared client and cache.
package backend

import (
	"github.com/dalemusser/learnadmin/internal/app/api/admins"
	"github.com/dalemusser/learnadmin/internal/app/api/analytics"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/apiclient"
	"github.com/dalemusser/learnadmin/internal/app/api/assignments"
	"github.com/dalemusser/learnadmin/internal/app/api/courses"
	"github.com/dalemusser/learnadmin/internal/app/api/enrollments"
	"github.com/dalemusser/learnadmin/internal/app/api/instructors"
	"github.com/dalemusser/learnadmin/internal/app/api/lessons"
	"github.com/dalemusser/learnadmin/internal/app/api/modules"
	"github.com/dalemusser/learnadmin/internal/app/api/notifications"
	"github.com/dalemusser/learnadmin/internal/app/api/reviews"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/app/api/tickets"
	"github.com/dalemusser/learnadmin/internal/app/api/users"
)

// Backend is what feature handlers hold to talk to the REST backend.
type Backend struct {
	Client *apiclient.Client
	Cache  apicache.Cache
	Runner *slice.Runner

	Admins        *admins.Slice
	Analytics     *analytics.Slice
	Assignments   *assignments.Slice
	Courses       *courses.Slice
	Enrollments   *enrollments.Slice
	Instructors   *instructors.Slice
	Lessons       *lessons.Slice
	Modules       *modules.Slice
	Notifications *notifications.Slice
	Reviews       *reviews.Slice
	Tickets       *tickets.Slice
	Users         *users.Slice
}

// New wires every slice to r. client is kept for health checks; it may be
// nil in tests that only exercise slices.
func New(client *apiclient.Client, r *slice.Runner) *Backend {
	return &Backend{
		Client:        client,
		Cache:         r.Cache,
		Runner:        r,
		Admins:        admins.New(r),
		Analytics:     analytics.New(r),
		Assignments:   assignments.New(r),
		Courses:       courses.New(r),
		Enrollments:   enrollments.New(r),
		Instructors:   instructors.New(r),
		Lessons:       lessons.New(r),
		Modules:       modules.New(r),
		Notifications: notifications.New(r),
		Reviews:       reviews.New(r),
		Tickets:       tickets.New(r),
		Users:         users.New(r),
	}
}
