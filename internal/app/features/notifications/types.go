// internal/app/features/notifications/types.go
package notifications

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/formutil"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type notificationRow struct {
	ID       string
	Title    string
	Message  template.HTML
	Audience string
	Type     string
	SentBy   string
	Sent     string
}

type listData struct {
	viewdata.BaseVM

	Q        string
	Audience string

	AudienceOptions []format.Option

	Rows      []notificationRow
	Range     paging.Range
	PageQuery template.URL
}

type formData struct {
	formutil.Base

	Title    string
	Message  string
	Audience string
	Type     string

	AudienceOptions []format.Option
	TypeOptions     []format.Option
}
