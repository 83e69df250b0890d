// Package api groups the backend slices. The tag types below are shared so
// that a mutation in one slice can invalidate another slice's queries.
package api

// Cache tag types, one per backend record kind.
const (
	TagCourse       = "Course"
	TagModule       = "Module"
	TagLesson       = "Lesson"
	TagAssignment   = "Assignment"
	TagSubmission   = "Submission"
	TagEnrollment   = "Enrollment"
	TagReview       = "Review"
	TagUser         = "User"
	TagInstructor   = "Instructor"
	TagTicket       = "Ticket"
	TagNotification = "Notification"
	TagAnalytics    = "Analytics"
	TagAdmin        = "Admin"
)
