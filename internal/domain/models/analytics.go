// internal/domain/models/analytics.go
package models

// AnalyticsOverview is the backend's platform-wide summary.
type AnalyticsOverview struct {
	TotalCourses     int             `json:"totalCourses"`
	TotalStudents    int             `json:"totalStudents"`
	TotalInstructors int             `json:"totalInstructors"`
	TotalEnrollments int             `json:"totalEnrollments"`
	TotalRevenue     float64         `json:"totalRevenue"`
	ActiveTickets    int             `json:"activeTickets"`
	AverageRating    float64         `json:"averageRating"`
	TopCourses       []CourseRanking `json:"topCourses,omitempty"`
}

// CourseRanking is one row of a top-courses table.
type CourseRanking struct {
	CourseID    string  `json:"courseId"`
	Title       string  `json:"title"`
	Enrollments int     `json:"enrollments"`
	Revenue     float64 `json:"revenue"`
	Rating      float64 `json:"rating"`
}

// RevenuePoint is one bucket of a revenue series.
type RevenuePoint struct {
	Period      string  `json:"period"`
	Revenue     float64 `json:"revenue"`
	Enrollments int     `json:"enrollments"`
}

// Revenue ranges accepted by /analytics/revenue.
const (
	Range7Days   = "7d"
	Range30Days  = "30d"
	Range90Days  = "90d"
	Range12Month = "12m"
)

var RevenueRanges = []string{Range7Days, Range30Days, Range90Days, Range12Month}
