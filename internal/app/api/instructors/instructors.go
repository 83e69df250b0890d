// Package instructors is the backend slice for /instructors.
package instructors

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func instructorID(i models.Instructor) string { return i.ID }

var (
	listEP = slice.Endpoint{
		Name: "instructors.list", Method: http.MethodGet, Path: "/instructors",
		Provides: slice.ProvideList(api.TagInstructor, instructorID),
	}
	getEP = slice.Endpoint{
		Name: "instructors.get", Method: http.MethodGet, Path: "/instructors/{id}",
		Provides: slice.ProvideItem(api.TagInstructor, instructorID),
	}
	statusEP = slice.Endpoint{
		Name: "instructors.status", Method: http.MethodPatch, Path: "/instructors/{id}/status",
		Invalidates: slice.InvalidateItem(api.TagInstructor, apicache.List(api.TagAnalytics)),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

func (s *Slice) List(ctx context.Context, token string) ([]models.Instructor, error) {
	return slice.Query[[]models.Instructor](ctx, s.r, listEP, slice.Call{Token: token})
}

func (s *Slice) Get(ctx context.Context, token, id string) (models.Instructor, error) {
	return slice.Query[models.Instructor](ctx, s.r, getEP, slice.ID(token, id))
}

// SetStatus approves or suspends an instructor.
func (s *Slice) SetStatus(ctx context.Context, token, id string, in models.StatusUpdate) error {
	call := slice.ID(token, id)
	call.Body = in
	return slice.Exec(ctx, s.r, statusEP, call)
}
