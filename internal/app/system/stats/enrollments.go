package stats

import (
	"math"

	"github.com/dalemusser/learnadmin/internal/domain/models"
)

// EnrollmentFilter narrows an enrollment list. Zero values match everything.
type EnrollmentFilter struct {
	Search        string
	Status        string
	PaymentStatus string
	CourseID      string
}

// Match reports whether e passes every predicate in f.
func (f EnrollmentFilter) Match(e models.Enrollment) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.PaymentStatus != "" && e.PaymentStatus != f.PaymentStatus {
		return false
	}
	if f.CourseID != "" && e.CourseID != f.CourseID {
		return false
	}
	return matchesAny(f.Search, e.StudentName, e.StudentEmail, e.CourseTitle)
}

// FilterEnrollments returns the enrollments matching f, preserving order.
func FilterEnrollments(enrollments []models.Enrollment, f EnrollmentFilter) []models.Enrollment {
	return filter(enrollments, f.Match)
}

// EnrollmentStats summarizes an enrollment list.
type EnrollmentStats struct {
	Total           int
	ByStatus        map[string]int
	ByPayment       map[string]int
	CompletionRate  float64 // percent of enrollments completed
	AverageProgress float64
	Revenue         float64 // sum of AmountPaid over paid enrollments
}

// CalculateEnrollmentStats builds EnrollmentStats for enrollments.
func CalculateEnrollmentStats(enrollments []models.Enrollment) EnrollmentStats {
	s := EnrollmentStats{
		Total:     len(enrollments),
		ByStatus:  Count(enrollments, func(e models.Enrollment) string { return e.Status }, models.EnrollmentStatuses),
		ByPayment: Count(enrollments, func(e models.Enrollment) string { return e.PaymentStatus }, models.PaymentStatuses),
	}
	if s.Total == 0 {
		return s
	}
	progress := 0.0
	for _, e := range enrollments {
		progress += e.Progress
		if e.PaymentStatus == models.PaymentPaid {
			s.Revenue += e.AmountPaid
		}
	}
	s.CompletionRate = Percent(s.ByStatus[models.EnrollmentCompleted], s.Total)
	s.AverageProgress = Round1(progress / float64(s.Total))
	s.Revenue = math.Round(s.Revenue*100) / 100
	return s
}
