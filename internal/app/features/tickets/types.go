// internal/app/features/tickets/types.go
package tickets

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type ticketRow struct {
	ID        string
	Subject   string
	Category  string
	Priority  string
	Status    string
	Requester string
	Email     string
	Replies   int
	Opened    string
	Updated   string
}

type statsView struct {
	Total      string
	Open       string
	Resolved   string
	Urgent     string
	ByPriority []statCount
}

type statCount struct {
	Label string
	Count string
}

type listData struct {
	viewdata.BaseVM

	Q        string
	Status   string
	Priority string

	StatusOptions   []format.Option
	PriorityOptions []format.Option

	Stats statsView

	Rows      []ticketRow
	Range     paging.Range
	PageQuery template.URL
}

type replyView struct {
	Author  string
	Staff   bool
	Message template.HTML
	Sent    string
}

type viewData struct {
	viewdata.BaseVM

	ticketRow
	Description template.HTML
	Thread      []replyView
	Closed      bool

	StatusOptions []format.Option

	// Draft keeps the reply text when validation fails.
	Draft string
}
