// internal/domain/models/review.go
package models

import "time"

// Review moderation states.
const (
	ReviewApproved = "approved"
	ReviewPending  = "pending"
	ReviewHidden   = "hidden"
)

// ReviewStatuses lists the moderation states offered by filters.
var ReviewStatuses = []string{ReviewApproved, ReviewPending, ReviewHidden}

// Review is a student's 1–5 star rating of a course.
type Review struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewUpdate is the PATCH body for moderating a review.
type ReviewUpdate struct {
	Status string `json:"status"`
}
