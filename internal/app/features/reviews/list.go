// internal/app/features/reviews/list.go
package reviews

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

func listFilter(r *http.Request) stats.ReviewFilter {
	f := stats.ReviewFilter{
		Search:   query.Search(r, "q"),
		Status:   query.Get(r, "status"),
		CourseID: query.Get(r, "course"),
	}
	if n, err := strconv.Atoi(query.Get(r, "rating")); err == nil && n >= 1 && n <= 5 {
		f.Rating = n
	}
	return f
}

// ServeList handles GET /reviews. The histogram summarizes every review
// matching the filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list reviews")
	defer cancel()

	reviews, err := h.API.Reviews.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load reviews.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := newestFirst(stats.FilterReviews(reviews, f))
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)

	rating := ""
	if f.Rating > 0 {
		rating = strconv.Itoa(f.Rating)
	}
	data := listData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Reviews", "/dashboard"),
		Q:             f.Search,
		Rating:        rating,
		Status:        f.Status,
		CourseID:      f.CourseID,
		RatingOptions: ratingOptions(f.Rating),
		StatusOptions: format.Options(models.ReviewStatuses, f.Status),
		CourseOptions: courseOptions(reviews, f.CourseID),
		Stats:         summarize(stats.CalculateReviewStats(filtered)),
		Rows:          rows(page),
		Range:         rng,
		PageQuery: paging.Query(url.Values{
			"q": {f.Search}, "rating": {rating}, "status": {f.Status}, "course": {f.CourseID},
		}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "reviews-table-wrap" {
		templates.RenderSnippet(w, "reviews_table", data)
		return
	}
	templates.Render(w, r, "reviews_list", data)
}

func newestFirst(reviews []models.Review) []models.Review {
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews
}

func ratingOptions(selected int) []format.Option {
	out := make([]format.Option, 0, 5)
	for n := 5; n >= 1; n-- {
		out = append(out, format.Option{Value: strconv.Itoa(n), Label: stars(n), Selected: n == selected})
	}
	return out
}

func courseOptions(reviews []models.Review, selected string) []format.Option {
	seen := map[string]bool{}
	var out []format.Option
	for _, rv := range reviews {
		if rv.CourseID == "" || seen[rv.CourseID] {
			continue
		}
		seen[rv.CourseID] = true
		out = append(out, format.Option{Value: rv.CourseID, Label: rv.CourseTitle, Selected: rv.CourseID == selected})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func summarize(s stats.ReviewStats) statsView {
	v := statsView{Total: format.Count(s.Total), Average: "—"}
	if s.Total > 0 {
		v.Average = format.Decimal(s.Average)
	}
	for n := 5; n >= 1; n-- {
		v.Buckets = append(v.Buckets, bucket{
			Stars:   n,
			Count:   format.Count(s.Distribution[n-1]),
			Percent: format.Percent(s.Percentages[n-1]),
			Width:   int(s.Percentages[n-1]),
		})
	}
	return v
}

// stars renders a clamped rating as filled and empty stars.
func stars(rating int) string {
	n := stats.ClampRating(rating)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func rows(reviews []models.Review) []reviewRow {
	out := make([]reviewRow, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, reviewRow{
			ID:       rv.ID,
			User:     rv.UserName,
			CourseID: rv.CourseID,
			Course:   rv.CourseTitle,
			Rating:   stats.ClampRating(rv.Rating),
			Stars:    stars(rv.Rating),
			Comment:  rv.Comment,
			Status:   rv.Status,
			Created:  format.Date(rv.CreatedAt),
		})
	}
	return out
}
