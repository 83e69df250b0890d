// internal/app/features/modules/types.go
package modules

import (
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type moduleRow struct {
	ID          string
	CourseID    string
	CourseTitle string
	Order       int
	Title       string
	Description string
	Lessons     string
	First       bool
	Last        bool
}

type listData struct {
	viewdata.BaseVM

	CourseID      string
	CourseTitle   string
	Q             string
	CourseOptions []format.Option
	Rows          []moduleRow
	// Reordering only makes sense inside one course.
	CanReorder bool
}

type formData struct {
	formutil.Base

	IsEdit bool
	ID     string
	Action string

	CourseID    string
	Title       string
	Description string
	Order       string

	CourseOptions []format.Option
}
