// Package enrollments is the backend slice for /enrollments.
package enrollments

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func enrollmentID(e models.Enrollment) string { return e.ID }

var (
	listEP = slice.Endpoint{
		Name: "enrollments.list", Method: http.MethodGet, Path: "/enrollments",
		Provides: slice.ProvideList(api.TagEnrollment, enrollmentID),
	}
	getEP = slice.Endpoint{
		Name: "enrollments.get", Method: http.MethodGet, Path: "/enrollments/{id}",
		Provides: slice.ProvideItem(api.TagEnrollment, enrollmentID),
	}
	updateEP = slice.Endpoint{
		Name: "enrollments.update", Method: http.MethodPatch, Path: "/enrollments/{id}",
		Invalidates: slice.InvalidateItem(api.TagEnrollment, apicache.List(api.TagAnalytics)),
	}
	deleteEP = slice.Endpoint{
		Name: "enrollments.delete", Method: http.MethodDelete, Path: "/enrollments/{id}",
		Invalidates: slice.InvalidateItem(api.TagEnrollment,
			apicache.List(api.TagAnalytics),
			apicache.List(api.TagCourse),
			apicache.List(api.TagUser),
		),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

func (s *Slice) List(ctx context.Context, token string) ([]models.Enrollment, error) {
	return slice.Query[[]models.Enrollment](ctx, s.r, listEP, slice.Call{Token: token})
}

func (s *Slice) Get(ctx context.Context, token, id string) (models.Enrollment, error) {
	return slice.Query[models.Enrollment](ctx, s.r, getEP, slice.ID(token, id))
}

// Update changes the enrollment and/or payment status. Empty fields are
// left unchanged by the backend.
func (s *Slice) Update(ctx context.Context, token, id string, in models.EnrollmentUpdate) (models.Enrollment, error) {
	call := slice.ID(token, id)
	call.Body = in
	return slice.Mutate[models.Enrollment](ctx, s.r, updateEP, call)
}

func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}
