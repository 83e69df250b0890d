// internal/app/features/dashboard/types.go
package dashboard

import "github.com/dalemusser/learnadmin/internal/app/system/viewdata"

// card is one headline number.
type card struct {
	Label string
	Value string
	Hint  string
	Link  string
}

type ticketRow struct {
	ID        string
	Subject   string
	Requester string
	Priority  string
	Status    string
	Opened    string
}

type reviewRow struct {
	ID      string
	Course  string
	Student string
	Rating  int
	Comment string
	Date    string
}

type rankingRow struct {
	Title       string
	Enrollments string
	Revenue     string
	Rating      string
}

type dashboardData struct {
	viewdata.BaseVM

	Cards          []card
	RecentTickets  []ticketRow
	PendingReviews []reviewRow
	TopCourses     []rankingRow
}
