package testutil

import (
	"time"

	"github.com/dalemusser/learnadmin/internal/domain/models"
)

// FixtureTime is the fixed instant used by every fixture.
var FixtureTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// Courses returns three courses in mixed states.
func Courses() []models.Course {
	return []models.Course{
		{ID: "c1", Title: "Go Fundamentals", Category: "Programming", Level: "beginner", Price: 49, Status: models.CourseStatusPublished, IsPublished: true, Rating: 4.6, ReviewCount: 12, StudentCount: 120, InstructorID: "i1", InstructorName: "Ada Lovelace", CreatedAt: FixtureTime},
		{ID: "c2", Title: "Advanced Concurrency", Category: "Programming", Level: "advanced", Price: 99, Status: models.CourseStatusDraft, Rating: 0, StudentCount: 0, InstructorID: "i9", InstructorName: "Rob Pike", CreatedAt: FixtureTime},
		{ID: "c3", Title: "Watercolor Basics", Category: "Art", Level: "beginner", Price: 0, Status: models.CourseStatusArchived, Rating: 4.0, ReviewCount: 4, StudentCount: 33, CreatedAt: FixtureTime},
	}
}

// Modules returns two modules of course c1.
func Modules() []models.Module {
	return []models.Module{
		{ID: "m1", CourseID: "c1", Title: "Getting Started", Order: 1, LessonCount: 2, CreatedAt: FixtureTime},
		{ID: "m2", CourseID: "c1", Title: "Types and Interfaces", Order: 2, LessonCount: 1, CreatedAt: FixtureTime},
	}
}

// Lessons returns lessons of module m1.
func Lessons() []models.Lesson {
	return []models.Lesson{
		{ID: "l1", CourseID: "c1", ModuleID: "m1", Title: "Installing Go", Type: models.LessonTypeVideo, VideoURL: "https://cdn.test/videos/install.mp4", Duration: 8, Order: 1, IsPreview: true, CreatedAt: FixtureTime},
		{ID: "l2", CourseID: "c1", ModuleID: "m1", Title: "Hello, World", Type: models.LessonTypeArticle, Content: "<p>Write <strong>main.go</strong></p>", Duration: 5, Order: 2, CreatedAt: FixtureTime},
	}
}

// Assignments returns one open and one closed assignment.
func Assignments() []models.Assignment {
	due := FixtureTime.Add(7 * 24 * time.Hour)
	return []models.Assignment{
		{ID: "a1", CourseID: "c1", CourseTitle: "Go Fundamentals", Title: "Build a CLI", MaxScore: 100, Status: "active", DueDate: &due, SubmissionCount: 2, CreatedAt: FixtureTime},
		{ID: "a2", CourseID: "c1", CourseTitle: "Go Fundamentals", Title: "Write tests", MaxScore: 50, Status: "closed", CreatedAt: FixtureTime},
	}
}

// Submissions returns an ungraded and a graded submission for a1.
func Submissions() []models.Submission {
	score := 88.0
	return []models.Submission{
		{ID: "s1", AssignmentID: "a1", StudentID: "u1", StudentName: "Grace Hopper", Text: "repo link", Status: models.SubmissionSubmitted, SubmittedAt: FixtureTime},
		{ID: "s2", AssignmentID: "a1", StudentID: "u2", StudentName: "Alan Turing", Score: &score, Feedback: "Nice", Status: models.SubmissionGraded, SubmittedAt: FixtureTime},
	}
}

// Enrollments returns enrollments covering every status.
func Enrollments() []models.Enrollment {
	done := FixtureTime.Add(48 * time.Hour)
	return []models.Enrollment{
		{ID: "e1", StudentID: "u1", StudentName: "Grace Hopper", StudentEmail: "grace@example.com", CourseID: "c1", CourseTitle: "Go Fundamentals", Status: models.EnrollmentActive, PaymentStatus: models.PaymentPaid, AmountPaid: 49, Progress: 40, EnrolledAt: FixtureTime},
		{ID: "e2", StudentID: "u2", StudentName: "Alan Turing", StudentEmail: "alan@example.com", CourseID: "c1", CourseTitle: "Go Fundamentals", Status: models.EnrollmentCompleted, PaymentStatus: models.PaymentPaid, AmountPaid: 49, Progress: 100, EnrolledAt: FixtureTime, CompletedAt: &done},
		{ID: "e3", StudentID: "u3", StudentName: "Katherine Johnson", StudentEmail: "kj@example.com", CourseID: "c3", CourseTitle: "Watercolor Basics", Status: models.EnrollmentPending, PaymentStatus: models.PaymentPending, Progress: 0, EnrolledAt: FixtureTime},
		{ID: "e4", StudentID: "u1", StudentName: "Grace Hopper", StudentEmail: "grace@example.com", CourseID: "c3", CourseTitle: "Watercolor Basics", Status: models.EnrollmentCancelled, PaymentStatus: models.PaymentRefunded, Progress: 10, EnrolledAt: FixtureTime},
	}
}

// Reviews returns reviews with ratings 5, 4, 4, 1 in mixed states.
func Reviews() []models.Review {
	return []models.Review{
		{ID: "r1", CourseID: "c1", CourseTitle: "Go Fundamentals", UserID: "u1", UserName: "Grace Hopper", Rating: 5, Comment: "Excellent pacing", Status: models.ReviewApproved, CreatedAt: FixtureTime},
		{ID: "r2", CourseID: "c1", CourseTitle: "Go Fundamentals", UserID: "u2", UserName: "Alan Turing", Rating: 4, Comment: "Good examples", Status: models.ReviewApproved, CreatedAt: FixtureTime},
		{ID: "r3", CourseID: "c3", CourseTitle: "Watercolor Basics", UserID: "u3", UserName: "Katherine Johnson", Rating: 4, Comment: "Relaxing", Status: models.ReviewPending, CreatedAt: FixtureTime},
		{ID: "r4", CourseID: "c3", CourseTitle: "Watercolor Basics", UserID: "u4", UserName: "Spam Bot", Rating: 1, Comment: "BUY NOW", Status: models.ReviewHidden, CreatedAt: FixtureTime},
	}
}

// Users returns an active and a blocked learner.
func Users() []models.User {
	return []models.User{
		{ID: "u1", Name: "Grace Hopper", Email: "grace@example.com", Status: models.UserActive, EnrolledCourses: 2, CreatedAt: FixtureTime},
		{ID: "u4", Name: "Spam Bot", Email: "bot@example.com", Status: models.UserBlocked, CreatedAt: FixtureTime},
	}
}

// Instructors returns instructors in each state.
func Instructors() []models.Instructor {
	return []models.Instructor{
		{ID: "i1", Name: "Ada Lovelace", Email: "ada@example.com", Expertise: []string{"Go", "Math"}, Status: models.InstructorApproved, CourseCount: 1, StudentCount: 120, Rating: 4.6, CreatedAt: FixtureTime},
		{ID: "i2", Name: "New Applicant", Email: "new@example.com", Status: models.InstructorPending, CreatedAt: FixtureTime},
		{ID: "i3", Name: "Suspended Person", Email: "sus@example.com", Status: models.InstructorSuspended, CreatedAt: FixtureTime},
	}
}

// Tickets returns tickets across statuses and priorities.
func Tickets() []models.SupportTicket {
	return []models.SupportTicket{
		{ID: "t1", Subject: "Cannot play video", Category: "technical", Priority: models.PriorityHigh, Status: models.TicketOpen, UserName: "Grace Hopper", UserEmail: "grace@example.com", CreatedAt: FixtureTime,
			Replies: []models.TicketReply{{ID: "tr1", Author: "Support", AuthorRole: "admin", Message: "Looking into it", CreatedAt: FixtureTime}}},
		{ID: "t2", Subject: "Refund request", Category: "billing", Priority: models.PriorityMedium, Status: models.TicketInProgress, UserName: "Alan Turing", CreatedAt: FixtureTime},
		{ID: "t3", Subject: "Typo in lesson", Category: "content", Priority: models.PriorityLow, Status: models.TicketResolved, UserName: "Katherine Johnson", CreatedAt: FixtureTime},
	}
}

// Notifications returns sent notifications.
func Notifications() []models.Notification {
	return []models.Notification{
		{ID: "n1", Title: "Maintenance", Message: "Down Sunday 2am", Audience: models.AudienceAll, Type: "warning", SentBy: "Test Admin", CreatedAt: FixtureTime},
	}
}

// Admins returns one operator per role.
func Admins() []models.Admin {
	return []models.Admin{
		{ID: "adm-super", Name: "Test Super", Email: "super@test.com", Role: models.RoleSuperAdmin, Status: "active", CreatedAt: FixtureTime},
		{ID: "adm-admin", Name: "Test Admin", Email: "admin@test.com", Role: models.RoleAdmin, Status: "active", CreatedAt: FixtureTime},
		{ID: "adm-mod", Name: "Test Moderator", Email: "mod@test.com", Role: models.RoleModerator, Status: "active", CreatedAt: FixtureTime},
	}
}

// Overview returns a platform summary.
func Overview() models.AnalyticsOverview {
	return models.AnalyticsOverview{
		TotalCourses: 3, TotalStudents: 153, TotalInstructors: 3, TotalEnrollments: 4,
		TotalRevenue: 98, ActiveTickets: 2, AverageRating: 3.5,
		TopCourses: []models.CourseRanking{{CourseID: "c1", Title: "Go Fundamentals", Enrollments: 2, Revenue: 98, Rating: 4.6}},
	}
}
