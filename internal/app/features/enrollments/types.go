// internal/app/features/enrollments/types.go
package enrollments

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type enrollmentRow struct {
	ID            string
	Student       string
	Email         string
	CourseID      string
	Course        string
	Status        string
	PaymentStatus string
	Amount        string
	Progress      string
	ProgressPct   int
	Enrolled      string
}

type statCount struct {
	Label string
	Value string
}

type statsView struct {
	Total           string
	ByStatus        []statCount
	ByPayment       []statCount
	CompletionRate  string
	AverageProgress string
	Revenue         string
}

type listData struct {
	viewdata.BaseVM

	Q             string
	Status        string
	PaymentStatus string
	CourseID      string

	StatusOptions  []format.Option
	PaymentOptions []format.Option
	CourseOptions  []format.Option

	Stats statsView
	Rows  []enrollmentRow

	Range     paging.Range
	PageQuery template.URL
}

type viewData struct {
	viewdata.BaseVM

	enrollmentRow
	StudentID string
	Completed string

	StatusOptions  []format.Option
	PaymentOptions []format.Option
}
