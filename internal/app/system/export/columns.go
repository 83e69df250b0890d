package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func datePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return date(*t)
}

func money(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
func num(n int) string       { return strconv.Itoa(n) }
func dec(f float64) string   { return strconv.FormatFloat(f, 'f', 1, 64) }

// EnrollmentColumns formats enrollments.
var EnrollmentColumns = []Column[models.Enrollment]{
	{"Enrollment ID", func(e models.Enrollment) string { return e.ID }},
	{"Student", func(e models.Enrollment) string { return e.StudentName }},
	{"Email", func(e models.Enrollment) string { return e.StudentEmail }},
	{"Course", func(e models.Enrollment) string { return e.CourseTitle }},
	{"Status", func(e models.Enrollment) string { return e.Status }},
	{"Payment Status", func(e models.Enrollment) string { return e.PaymentStatus }},
	{"Amount Paid", func(e models.Enrollment) string { return money(e.AmountPaid) }},
	{"Progress (%)", func(e models.Enrollment) string { return dec(e.Progress) }},
	{"Enrolled At", func(e models.Enrollment) string { return date(e.EnrolledAt) }},
	{"Completed At", func(e models.Enrollment) string { return datePtr(e.CompletedAt) }},
}

// ReviewColumns formats reviews.
var ReviewColumns = []Column[models.Review]{
	{"Review ID", func(r models.Review) string { return r.ID }},
	{"Course", func(r models.Review) string { return r.CourseTitle }},
	{"Student", func(r models.Review) string { return r.UserName }},
	{"Rating", func(r models.Review) string { return num(r.Rating) }},
	{"Comment", func(r models.Review) string { return r.Comment }},
	{"Status", func(r models.Review) string { return r.Status }},
	{"Date", func(r models.Review) string { return date(r.CreatedAt) }},
}

// UserColumns formats learner accounts.
var UserColumns = []Column[models.User]{
	{"User ID", func(u models.User) string { return u.ID }},
	{"Name", func(u models.User) string { return u.Name }},
	{"Email", func(u models.User) string { return u.Email }},
	{"Phone", func(u models.User) string { return u.Phone }},
	{"Status", func(u models.User) string { return u.Status }},
	{"Enrolled Courses", func(u models.User) string { return num(u.EnrolledCourses) }},
	{"Joined", func(u models.User) string { return date(u.CreatedAt) }},
	{"Last Login", func(u models.User) string { return datePtr(u.LastLoginAt) }},
}

// InstructorColumns formats instructors.
var InstructorColumns = []Column[models.Instructor]{
	{"Instructor ID", func(i models.Instructor) string { return i.ID }},
	{"Name", func(i models.Instructor) string { return i.Name }},
	{"Email", func(i models.Instructor) string { return i.Email }},
	{"Phone", func(i models.Instructor) string { return i.Phone }},
	{"Expertise", func(i models.Instructor) string { return strings.Join(i.Expertise, ", ") }},
	{"Status", func(i models.Instructor) string { return i.Status }},
	{"Courses", func(i models.Instructor) string { return num(i.CourseCount) }},
	{"Students", func(i models.Instructor) string { return num(i.StudentCount) }},
	{"Rating", func(i models.Instructor) string { return dec(i.Rating) }},
	{"Joined", func(i models.Instructor) string { return date(i.CreatedAt) }},
}

// CourseColumns formats courses.
var CourseColumns = []Column[models.Course]{
	{"Course ID", func(c models.Course) string { return c.ID }},
	{"Title", func(c models.Course) string { return c.Title }},
	{"Category", func(c models.Course) string { return c.Category }},
	{"Level", func(c models.Course) string { return c.Level }},
	{"Instructor", func(c models.Course) string { return c.InstructorName }},
	{"Price", func(c models.Course) string { return money(c.Price) }},
	{"Status", func(c models.Course) string { return c.Status }},
	{"Students", func(c models.Course) string { return num(c.StudentCount) }},
	{"Rating", func(c models.Course) string { return dec(c.Rating) }},
	{"Reviews", func(c models.Course) string { return num(c.ReviewCount) }},
	{"Created", func(c models.Course) string { return date(c.CreatedAt) }},
}

// TicketColumns formats support tickets.
var TicketColumns = []Column[models.SupportTicket]{
	{"Ticket ID", func(t models.SupportTicket) string { return t.ID }},
	{"Subject", func(t models.SupportTicket) string { return t.Subject }},
	{"Category", func(t models.SupportTicket) string { return t.Category }},
	{"Priority", func(t models.SupportTicket) string { return t.Priority }},
	{"Status", func(t models.SupportTicket) string { return t.Status }},
	{"Requester", func(t models.SupportTicket) string { return t.UserName }},
	{"Email", func(t models.SupportTicket) string { return t.UserEmail }},
	{"Replies", func(t models.SupportTicket) string { return num(len(t.Replies)) }},
	{"Opened", func(t models.SupportTicket) string { return date(t.CreatedAt) }},
}

// CourseRankingColumns formats the analytics top-courses table.
var CourseRankingColumns = []Column[models.CourseRanking]{
	{"Course", func(c models.CourseRanking) string { return c.Title }},
	{"Enrollments", func(c models.CourseRanking) string { return num(c.Enrollments) }},
	{"Revenue", func(c models.CourseRanking) string { return money(c.Revenue) }},
	{"Rating", func(c models.CourseRanking) string { return dec(c.Rating) }},
}

// RevenueColumns formats a revenue series.
var RevenueColumns = []Column[models.RevenuePoint]{
	{"Period", func(p models.RevenuePoint) string { return p.Period }},
	{"Revenue", func(p models.RevenuePoint) string { return money(p.Revenue) }},
	{"Enrollments", func(p models.RevenuePoint) string { return num(p.Enrollments) }},
}
