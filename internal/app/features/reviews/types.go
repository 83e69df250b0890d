// internal/app/features/reviews/types.go
package reviews

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type reviewRow struct {
	ID       string
	User     string
	CourseID string
	Course   string
	Rating   int
	Stars    string
	Comment  string
	Status   string
	Created  string
}

// bucket is one bar of the rating histogram.
type bucket struct {
	Stars   int
	Count   string
	Percent string
	Width   int // bar width, 0-100
}

type statsView struct {
	Total   string
	Average string
	Buckets []bucket // 5 stars first
}

type listData struct {
	viewdata.BaseVM

	Q        string
	Rating   string
	Status   string
	CourseID string

	RatingOptions []format.Option
	StatusOptions []format.Option
	CourseOptions []format.Option

	Stats statsView
	Rows  []reviewRow

	Range     paging.Range
	PageQuery template.URL
}
