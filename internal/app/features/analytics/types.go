// internal/app/features/analytics/types.go
package analytics

import (
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type totals struct {
	Courses     string
	Students    string
	Instructors string
	Enrollments string
	Revenue     string
	Tickets     string
	Rating      string
}

type revenueBar struct {
	Period      string
	Revenue     string
	Enrollments string
	// Width is the bar length as a percent of the largest period.
	Width float64
}

type revenueView struct {
	Range       string
	Bars        []revenueBar
	Total       string
	Enrollments string
	Average     string
}

type enrollmentView struct {
	Completion string
	Progress   string
	Paid       string
	ByStatus   []statCount
	ByPayment  []statCount
}

type statCount struct {
	Label string
	Count string
}

type rankingRow struct {
	Rank        int
	CourseID    string
	Title       string
	Enrollments string
	Revenue     string
	Rating      string
}

type pageData struct {
	viewdata.BaseVM

	RangeOptions []format.Option

	Totals      totals
	Revenue     revenueView
	Enrollments enrollmentView
	Ranking     []rankingRow
}
