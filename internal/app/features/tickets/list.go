// internal/app/features/tickets/list.go
package tickets

import (
	"net/http"
	"net/url"
	"sort"

	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/format"
	"github.com/dalemusser/learnadmin/internal/app/system/paging"
	"github.com/dalemusser/learnadmin/internal/app/system/stats"
	"github.com/dalemusser/learnadmin/internal/app/system/timeouts"
	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

func listFilter(r *http.Request) stats.TicketFilter {
	return stats.TicketFilter{
		Search:   query.Search(r, "q"),
		Status:   query.Get(r, "status"),
		Priority: query.Get(r, "priority"),
	}
}

// ServeList handles GET /tickets. Stats cover every ticket; the table shows
// the filtered set, most urgent first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list tickets")
	defer cancel()

	all, err := h.API.Tickets.List(ctx, auth.Token(r))
	var loadErr string
	if err != nil {
		msg, done := h.Act.ReadFailed(w, r, err, "Failed to load tickets.")
		if done {
			return
		}
		loadErr = msg
	}

	filtered := triage(stats.FilterTickets(all, f))
	page, rng := paging.Window(filtered, paging.ParseStart(r), paging.PageSize)

	data := listData{
		BaseVM:          viewdata.NewBaseVM(w, r, "Support Tickets", "/dashboard"),
		Q:               f.Search,
		Status:          f.Status,
		Priority:        f.Priority,
		StatusOptions:   format.Options(models.TicketStatuses, f.Status),
		PriorityOptions: format.Options(models.TicketPriorities, f.Priority),
		Stats:           summarize(stats.CalculateTicketStats(all)),
		Rows:            rows(page),
		Range:           rng,
		PageQuery: paging.Query(url.Values{
			"q": {f.Search}, "status": {f.Status}, "priority": {f.Priority},
		}),
	}
	if loadErr != "" {
		data.AddError(loadErr)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "tickets-table-wrap" {
		templates.RenderSnippet(w, "tickets_table", data)
		return
	}
	templates.Render(w, r, "tickets_list", data)
}

var priorityRank = map[string]int{
	models.PriorityUrgent: 0,
	models.PriorityHigh:   1,
	models.PriorityMedium: 2,
	models.PriorityLow:    3,
}

// triage orders unresolved tickets before resolved ones, then by priority,
// then oldest first so long waits surface.
func triage(in []models.SupportTicket) []models.SupportTicket {
	out := make([]models.SupportTicket, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := isOpen(out[i]), isOpen(out[j])
		if ai != aj {
			return ai
		}
		pi, pj := rank(out[i].Priority), rank(out[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func rank(p string) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

func isOpen(t models.SupportTicket) bool {
	return t.Status == models.TicketOpen || t.Status == models.TicketInProgress
}

func summarize(s stats.TicketStats) statsView {
	v := statsView{
		Total:    format.Count(s.Total),
		Open:     format.Count(s.Open),
		Resolved: format.Count(s.ByStatus[models.TicketResolved] + s.ByStatus[models.TicketClosed]),
		Urgent:   format.Count(s.ByPriority[models.PriorityUrgent]),
	}
	for _, p := range models.TicketPriorities {
		v.ByPriority = append(v.ByPriority, statCount{Label: format.Label(p), Count: format.Count(s.ByPriority[p])})
	}
	return v
}

func row(t models.SupportTicket) ticketRow {
	updated := t.UpdatedAt
	if updated.IsZero() {
		updated = t.CreatedAt
	}
	return ticketRow{
		ID:        t.ID,
		Subject:   t.Subject,
		Category:  format.Label(t.Category),
		Priority:  t.Priority,
		Status:    t.Status,
		Requester: t.UserName,
		Email:     t.UserEmail,
		Replies:   len(t.Replies),
		Opened:    format.Date(t.CreatedAt),
		Updated:   format.DateTime(updated),
	}
}

func rows(tickets []models.SupportTicket) []ticketRow {
	out := make([]ticketRow, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, row(t))
	}
	return out
}
