// internal/app/features/courses/types.go
package courses

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type courseRow struct {
	ID          string
	Title       string
	Category    string
	Level       string
	Instructor  string
	Price       string
	Status      string
	IsPublished bool
	Students    string
	Rating      string
}

type statsView struct {
	Total         string
	Published     string
	Draft         string
	Archived      string
	Students      string
	AverageRating string
}

type listData struct {
	viewdata.BaseVM

	Q        string
	Status   string
	Category string

	StatusOptions   []format.Option
	CategoryOptions []format.Option

	Stats statsView
	Rows  []courseRow

	Range     paging.Range
	PageQuery template.URL
}

type moduleRow struct {
	ID      string
	Order   int
	Title   string
	Lessons string
}

type viewData struct {
	viewdata.BaseVM

	ID          string
	Title       string
	Description string
	Category    string
	Level       string
	Language    string
	Instructor  string
	Price       string
	Discount    string
	Thumbnail   string
	Status      string
	IsPublished bool
	Rating      string
	Reviews     string
	Students    string
	Duration    string
	Tags        []string
	Created     string
	Updated     string

	ShowModules bool
	Modules     []moduleRow
}

type formData struct {
	formutil.Base

	IsEdit bool
	ID     string
	Action string

	Title         string
	Description   string
	Category      string
	Level         string
	Language      string
	Price         string
	DiscountPrice string
	Thumbnail     string
	InstructorID  string
	Status        string
	Tags          string

	LevelOptions  []format.Option
	StatusOptions []format.Option
}
