// internal/app/features/auditlog/types.go
package auditlog

import (
	"html/template"

	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/timezones"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

type detail struct {
	Key   string
	Value string
}

// eventRow is one audit event formatted in the selected display zone.
type eventRow struct {
	ID         string
	When       string
	Category   string
	EventType  string
	Actor      string
	ActorRole  string
	Resource   string
	ResourceID string
	IP         string
	Success    bool
	Reason     string
	Details    []detail
}

type listData struct {
	viewdata.BaseVM

	// Disabled is set when audit events are not being stored.
	Disabled bool

	Category  string
	EventType string
	Resource  string
	Outcome   string
	StartDate string
	EndDate   string
	TZ        string

	CategoryOptions  []format.Option
	EventTypeOptions []format.Option
	OutcomeOptions   []format.Option
	TimezoneGroups   []timezones.ZoneGroup

	Rows      []eventRow
	Range     paging.Range
	PageQuery template.URL
}
