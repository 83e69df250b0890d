package stats

import "github.com/dalemusser/learnadmin/internal/domain/models"

// TicketFilter narrows a ticket list.
type TicketFilter struct {
	Search   string
	Status   string
	Priority string
}

func (f TicketFilter) Match(t models.SupportTicket) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return matchesAny(f.Search, t.Subject, t.UserName, t.UserEmail, t.Category)
}

func FilterTickets(tickets []models.SupportTicket, f TicketFilter) []models.SupportTicket {
	return filter(tickets, f.Match)
}

// TicketStats counts tickets per status and priority. Open counts both
// open and in-progress tickets.
type TicketStats struct {
	Total      int
	Open       int
	ByStatus   map[string]int
	ByPriority map[string]int
}

func CalculateTicketStats(tickets []models.SupportTicket) TicketStats {
	s := TicketStats{
		Total:      len(tickets),
		ByStatus:   Count(tickets, func(t models.SupportTicket) string { return t.Status }, models.TicketStatuses),
		ByPriority: Count(tickets, func(t models.SupportTicket) string { return t.Priority }, models.TicketPriorities),
	}
	s.Open = s.ByStatus[models.TicketOpen] + s.ByStatus[models.TicketInProgress]
	return s
}
