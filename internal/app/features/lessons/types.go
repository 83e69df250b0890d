// internal/app/features/lessons/types.go
package lessons

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type lessonRow struct {
	ID        string
	ModuleID  string
	Module    string
	Order     int
	Title     string
	Type      string
	Duration  string
	IsPreview bool
}

type listData struct {
	viewdata.BaseVM

	ModuleID      string
	Q             string
	Type          string
	ModuleOptions []format.Option
	TypeOptions   []format.Option
	Rows          []lessonRow
}

type viewData struct {
	viewdata.BaseVM

	ID          string
	ModuleID    string
	Module      string
	Title       string
	Type        string
	Duration    string
	Order       int
	IsPreview   bool
	VideoURL    string
	DocumentURL string
	Content     template.HTML
	Updated     string
}

type formData struct {
	formutil.Base

	IsEdit bool
	ID     string
	Action string

	ModuleID    string
	Title       string
	Type        string
	Content     string
	VideoURL    string
	DocumentURL string
	Duration    string
	Order       string
	IsPreview   bool

	ModuleOptions []format.Option
	TypeOptions   []format.Option
}
