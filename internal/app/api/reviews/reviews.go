// Package reviews is the backend slice for /reviews.
package reviews

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

// Moderation changes which reviews count toward course ratings.
var (
	listEP = slice.Endpoint{
		Name: "reviews.list", Method: http.MethodGet, Path: "/reviews",
		Provides: slice.ProvideList(api.TagReview, func(r models.Review) string { return r.ID }),
	}
	moderateEP = slice.Endpoint{
		Name: "reviews.moderate", Method: http.MethodPatch, Path: "/reviews/{id}",
		Invalidates: slice.InvalidateItem(api.TagReview, apicache.List(api.TagCourse), apicache.List(api.TagAnalytics)),
	}
	deleteEP = slice.Endpoint{
		Name: "reviews.delete", Method: http.MethodDelete, Path: "/reviews/{id}",
		Invalidates: slice.InvalidateItem(api.TagReview, apicache.List(api.TagCourse), apicache.List(api.TagAnalytics)),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

func (s *Slice) List(ctx context.Context, token string) ([]models.Review, error) {
	return slice.Query[[]models.Review](ctx, s.r, listEP, slice.Call{Token: token})
}

// SetStatus approves, hides or re-queues a review.
func (s *Slice) SetStatus(ctx context.Context, token, id, status string) error {
	call := slice.ID(token, id)
	call.Body = models.ReviewUpdate{Status: status}
	return slice.Exec(ctx, s.r, moderateEP, call)
}

func (s *Slice) Delete(ctx context.Context, token, id string) error {
	return slice.Exec(ctx, s.r, deleteEP, slice.ID(token, id))
}
