// Package analytics is the read-only backend slice for /analytics.
package analytics

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dalemusser/learnadmin/internal/app/api"
	"github.com/dalemusser/learnadmin/internal/app/api/apicache"
	"github.com/dalemusser/learnadmin/internal/app/api/slice"
	"github.com/dalemusser/learnadmin/internal/domain/models"
)

var (
	overviewEP = slice.Endpoint{
		Name: "analytics.overview", Method: http.MethodGet, Path: "/analytics/overview",
		Provides: slice.ProvideStatic(apicache.List(api.TagAnalytics)),
	}
	revenueEP = slice.Endpoint{
		Name: "analytics.revenue", Method: http.MethodGet, Path: "/analytics/revenue",
		Provides: slice.ProvideStatic(apicache.List(api.TagAnalytics)),
	}
)

type Slice struct {
	r *slice.Runner
}

func New(r *slice.Runner) *Slice { return &Slice{r: r} }

// Overview returns platform totals and the top courses.
func (s *Slice) Overview(ctx context.Context, token string) (models.AnalyticsOverview, error) {
	return slice.Query[models.AnalyticsOverview](ctx, s.r, overviewEP, slice.Call{Token: token})
}

// Revenue returns the revenue series for rng (see models.RevenueRanges).
// Unknown ranges fall back to 30d.
func (s *Slice) Revenue(ctx context.Context, token, rng string) ([]models.RevenuePoint, error) {
	return slice.Query[[]models.RevenuePoint](ctx, s.r, revenueEP, slice.Call{
		Token: token,
		Query: url.Values{"range": {NormalizeRange(rng)}},
	})
}

// NormalizeRange returns rng when it is a known range, else 30d.
func NormalizeRange(rng string) string {
	for _, r := range models.RevenueRanges {
		if r == rng {
			return rng
		}
	}
	return models.Range30Days
}
