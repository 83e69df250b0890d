// Package courses is the backend slice for /course.
package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func courseID(c models.Course) string { return c.ID }

var (
	listEP = slice.Endpoint{
		Name: "courses.list", Method: http.MethodGet, Path: "/course",
		Provides: slice.ProvideList(api.TagCourse, courseID),
	}
	getEP = slice.Endpoint{
		Name: "courses.get", Method: http.MethodGet, Path: "/course/{id}",
		Provides: slice.ProvideItem(api.TagCourse, courseID),
	}
	createEP = slice.Endpoint{
		Name: "courses.create", Method: http.MethodPost, Path: "/course",
		Invalidates: slice.InvalidateList(api.TagCourse, apicache.List(api.TagAnalytics)),
	}
	updateEP = slice.Endpoint{
		Name: "courses.update", Method: http.MethodPatch, Path: "/course/{id}",
		Invalidates: slice.InvalidateItem(api.TagCourse),
	}
	publishEP = slice.Endpoint{
		Name: "courses.publish", Method: http.MethodPatch, Path: "/course/{id}/publish",
		Invalidates: slice.InvalidateItem(api.TagCourse, apicache.List(api.TagAnalytics)),
	}
	// Deleting a course removes its content and enrollments on the backend.
	deleteEP = slice.Endpoint{
		Name: "courses.delete", Method: http.MethodDelete, Path: "/course/{id}",
		Invalidates: slice.InvalidateItem(api.TagCourse,
			apicache.List(api.TagModule),
			apicache.List(api.TagLesson),
			apicache.List(api.TagAssignment),
			apicache.List(api.TagEnrollment),
			apicache.List(api.TagReview),
			apicache.List(api.TagAnalytics),
		),
	}
)

// Slice exposes typed course calls.
type Slice struct {
	r *slice.Runner
}

// New returns a course slice over r.
func New(r *slice.Runner) *Slice { return &Slice{r: r} }

// List returns every course.
func (s *Slice) List(ctx context.Context, token string) ([]models.Course, error) {
	return slice.Query[[]models.Course](ctx, s.r, listEP, slice.Call{Token: token})
}

// Get returns one course.
func (s *Slice) Get(ctx context.Context, token, id string) (models.Course, error) {
	return slice.Query[models.Course](ctx, s.r, getEP, slice.ID(token, id))
}

// Create adds a course and returns the stored record.
func (s *Slice) Create(ctx context.Context, token string, in models.CourseInput) (models.Course, error) {
	return slice.Mutate[models.Course](ctx, s.r, createEP, slice.Call{Token: token, Body: in})
}

// Update replaces the editable fields of a course.
func (s *Slice) Update(ctx context.Context, token, id string, in models.CourseInput) (models.Course, error) {
	call := slice.ID(token, id)
	call.Body = in
	return slice.Mutate[models.Course](ctx, s.r, updateEP, call)
}

// SetPublished publishes or unpublishes a course.
func (s *Slice) SetPublished(ctx context.Context, token, id string, published bool) error {
	call := slice.ID(token, id)
	call.Body = map[string]bool{"isPublished": published}
	return slice.Exec(ctx, s.r, publishEP, call)
}

// Delete removes a course.
func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}
