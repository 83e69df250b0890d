// internal/app/features/assignments/types.go
package assignments

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type assignmentRow struct {
	ID          string
	CourseID    string
	Course      string
	Title       string
	Due         string
	Overdue     bool
	MaxScore    int
	Status      string
	Submissions string
}

type listData struct {
	viewdata.BaseVM

	CourseID string
	Status   string
	Q        string

	CourseOptions []format.Option
	StatusOptions []format.Option

	Rows      []assignmentRow
	Range     paging.Range
	PageQuery template.URL
}

type submissionRow struct {
	ID        string
	Student   string
	Submitted string
	Status    string
	Text      string
	FileURL   string
	Score     string // prefilled grade input
	Feedback  string
	Graded    bool
}

type viewData struct {
	viewdata.BaseVM

	ID          string
	CourseID    string
	Course      string
	Title       string
	Description template.HTML
	Due         string
	MaxScore    int
	Status      string

	Graded       string
	AverageScore string
	Submissions  []submissionRow
}

type formData struct {
	formutil.Base

	IsEdit bool
	ID     string
	Action string

	CourseID    string
	Title       string
	Description string
	DueDate     string // yyyy-mm-dd
	MaxScore    string
	Status      string

	CourseOptions []format.Option
	StatusOptions []format.Option
}
