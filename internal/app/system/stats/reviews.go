package stats

import (
	"strings"

	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// ReviewStats summarizes ratings. Distribution[i] counts reviews rated i+1.
type ReviewStats struct {
	Total        int
	Average      float64
	Distribution [5]int
	Percentages  [5]float64
}

// ClampRating forces r into 1..5.
func ClampRating(r int) int {
	switch {
	case r < 1:
		return 1
	case r > 5:
		return 5
	}
	return r
}

// CalculateReviewStats builds the rating histogram and the average (one
// decimal). Out-of-range ratings are clamped so the buckets always sum to
// Total.
func CalculateReviewStats(reviews []models.Review) ReviewStats {
	var s ReviewStats
	s.Total = len(reviews)
	if s.Total == 0 {
		return s
	}
	sum := 0
	for _, r := range reviews {
		rating := ClampRating(r.Rating)
		s.Distribution[rating-1]++
		sum += rating
	}
	s.Average = Round1(float64(sum) / float64(s.Total))
	for i, n := range s.Distribution {
		s.Percentages[i] = Percent(n, s.Total)
	}
	return s
}

// ReviewFilter narrows a review list. Zero values match everything.
type ReviewFilter struct {
	Search   string
	Rating   int // 1..5, 0 = any
	Status   string
	CourseID string
}

// Match reports whether r passes every predicate in f.
func (f ReviewFilter) Match(r models.Review) bool {
	if f.Rating != 0 && ClampRating(r.Rating) != f.Rating {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.CourseID != "" && r.CourseID != f.CourseID {
		return false
	}
	return matchesAny(f.Search, r.UserName, r.CourseTitle, r.Comment)
}

// FilterReviews returns the reviews matching f, preserving order. Each
// predicate is independent, so applying them separately in any order gives
// the same result.
func FilterReviews(reviews []models.Review, f ReviewFilter) []models.Review {
	return filter(reviews, f.Match)
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// matchesAny reports whether the folded term is a substring of any folded
// field. An empty term matches.
func matchesAny(term string, fields ...string) bool {
	q := text.Fold(term)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if f != "" && strings.Contains(text.Fold(f), q) {
			return true
		}
	}
	return false
}
