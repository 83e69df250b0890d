// internal/app/features/users/types.go
package users

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type userRow struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Status    string
	Blocked   bool
	Courses   string
	Joined    string
	LastLogin string
}

type listData struct {
	viewdata.BaseVM

	Q      string
	Status string

	StatusOptions []format.Option

	Total   string
	Active  string
	Blocked string

	Rows      []userRow
	Range     paging.Range
	PageQuery template.URL
}

type enrollmentRow struct {
	ID       string
	Course   string
	Status   string
	Progress string
	Enrolled string
}

type viewData struct {
	viewdata.BaseVM

	userRow
	Avatar      string
	Enrollments []enrollmentRow
}
