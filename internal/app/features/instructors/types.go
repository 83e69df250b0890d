// internal/app/features/instructors/types.go
package instructors

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type instructorRow struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Expertise string
	Status    string
	Courses   string
	Students  string
	Rating    string
	Joined    string

	// CanApprove and CanSuspend decide which actions the row offers.
	CanApprove bool
	CanSuspend bool
}

type listData struct {
	viewdata.BaseVM

	Q      string
	Status string

	StatusOptions []format.Option

	Total     string
	Pending   string
	Approved  string
	Suspended string

	Rows      []instructorRow
	Range     paging.Range
	PageQuery template.URL
}

type courseRow struct {
	ID       string
	Title    string
	Status   string
	Students string
	Rating   string
}

type viewData struct {
	viewdata.BaseVM

	instructorRow
	Bio     string
	Courses []courseRow
}
