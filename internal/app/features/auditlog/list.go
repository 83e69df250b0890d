// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/timezones"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const pageSize = 50

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var categories = []string{audit.CategoryAuth, audit.CategoryAdmin}

// filters holds the raw query values of the list page.
type filters struct {
	Category  string
	EventType string
	Resource  string
	Outcome   string
	StartDate string
	EndDate   string
	TZ        string
}

func parseFilters(r *http.Request) filters {
	return filters{
		Category:  query.Get(r, "category"),
		EventType: query.Get(r, "event_type"),
		Resource:  query.Get(r, "resource"),
		Outcome:   query.Get(r, "outcome"),
		StartDate: query.Get(r, "start_date"),
		EndDate:   query.Get(r, "end_date"),
		TZ:        query.Get(r, "tz"),
	}
}

func (f filters) values() url.Values {
	return url.Values{
		"category":   {f.Category},
		"event_type": {f.EventType},
		"resource":   {f.Resource},
		"outcome":    {f.Outcome},
		"start_date": {f.StartDate},
		"end_date":   {f.EndDate},
		"tz":         {f.TZ},
	}
}

// storeFilter converts f into a store query. Dates are whole days in loc;
// the end date includes its last second. Unparseable dates are ignored.
func (f filters) storeFilter(loc *time.Location) audit.QueryFilter {
	qf := audit.QueryFilter{
		Category:  f.Category,
		EventType: f.EventType,
		Resource:  f.Resource,
	}
	switch f.Outcome {
	case outcomeSuccess:
		ok := true
		qf.Success = &ok
	case outcomeFailure:
		ok := false
		qf.Success = &ok
	}
	if t, err := time.ParseInLocation("2006-01-02", f.StartDate, loc); err == nil {
		start := t.UTC()
		qf.StartTime = &start
	}
	if t, err := time.ParseInLocation("2006-01-02", f.EndDate, loc); err == nil {
		end := t.AddDate(0, 0, 1).Add(-time.Second).UTC()
		qf.EndTime = &end
	}
	return qf
}

// ServeList handles GET /auditlog.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := parseFilters(r)
	if !timezones.Valid(f.TZ) {
		f.TZ = ""
	}
	loc := timezones.Location(f.TZ)
	tzGroups, err := timezones.Groups()
	if err != nil {
		h.Log.Warn("timezone list unavailable", zap.Error(err))
	}

	data := listData{
		BaseVM:          viewdata.NewBaseVM(w, r, "Audit Log", "/dashboard"),
		Category:        f.Category,
		EventType:       f.EventType,
		Resource:        f.Resource,
		Outcome:         f.Outcome,
		StartDate:       f.StartDate,
		EndDate:         f.EndDate,
		TZ:              f.TZ,
		CategoryOptions: format.Options(categories, f.Category),
		OutcomeOptions:  format.Options([]string{outcomeSuccess, outcomeFailure}, f.Outcome),
		TimezoneGroups:  tzGroups,
		PageQuery:       paging.Query(f.values()),
	}

	if h.Store == nil {
		data.Disabled = true
		templates.Render(w, r, "audit_list", data)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	start := paging.ParseStart(r)
	qf := f.storeFilter(loc)
	qf.Limit = pageSize
	qf.Offset = paging.Offset(start)

	events, err := h.Store.Query(ctx, qf)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events", err, "Failed to load the audit log.", "/dashboard")
		return
	}
	total, err := h.Store.Count(ctx, qf)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count audit events", err, "Failed to load the audit log.", "/dashboard")
		return
	}

	types, err := h.Store.EventTypes(ctx)
	if err != nil {
		h.Log.Warn("list audit event types", zap.Error(err))
	}
	sort.Strings(types)
	data.EventTypeOptions = format.Options(types, f.EventType)

	data.Rows = rows(events, loc)
	data.Range = paging.ComputeRange(start, len(events), int(total), pageSize)

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "audit-table-wrap" {
		templates.RenderSnippet(w, "audit_table", data)
		return
	}
	templates.Render(w, r, "audit_list", data)
}

func row(e audit.Event, loc *time.Location) eventRow {
	actor := e.ActorEmail
	if actor == "" {
		actor = e.ActorID
	}
	out := eventRow{
		ID:         e.ID.Hex(),
		When:       e.Timestamp.In(loc).Format("Jan 2, 2006 3:04:05 PM MST"),
		Category:   e.Category,
		EventType:  format.Label(e.EventType),
		Actor:      actor,
		ActorRole:  viewdata.RoleLabel(e.ActorRole),
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		IP:         e.IP,
		Success:    e.Success,
		Reason:     e.FailureReason,
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Details = append(out.Details, detail{Key: k, Value: e.Details[k]})
	}
	return out
}

func rows(events []audit.Event, loc *time.Location) []eventRow {
	out := make([]eventRow, 0, len(events))
	for _, e := range events {
		out = append(out, row(e, loc))
	}
	return out
}
