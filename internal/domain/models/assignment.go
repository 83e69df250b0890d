// internal/domain/models/assignment.go
package models

import "time"

// Assignment states.
const (
	AssignmentActive = "active"
	AssignmentClosed = "closed"
)

// AssignmentStatuses lists the assignment states in form order.
var AssignmentStatuses = []string{AssignmentActive, AssignmentClosed}

// Submission states.
const (
	SubmissionSubmitted = "submitted"
	SubmissionGraded    = "graded"
	SubmissionLate      = "late"
)

// Assignment is graded work attached to a course (and optionally a module).
type Assignment struct {
	ID              string     `json:"id"`
	CourseID        string     `json:"courseId"`
	CourseTitle     string     `json:"courseTitle,omitempty"`
	ModuleID        string     `json:"moduleId,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	MaxScore        int        `json:"maxScore"`
	Status          string     `json:"status"`
	SubmissionCount int        `json:"submissionCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// AssignmentInput is the body for create/update calls.
type AssignmentInput struct {
	CourseID    string     `json:"courseId"`
	ModuleID    string     `json:"moduleId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	MaxScore    int        `json:"maxScore"`
	Status      string     `json:"status"`
}

// Submission is a student's answer to an assignment.
type Submission struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignmentId"`
	StudentID    string    `json:"studentId"`
	StudentName  string    `json:"studentName"`
	FileURL      string    `json:"fileUrl,omitempty"`
	Text         string    `json:"text,omitempty"`
	Score        *float64  `json:"score,omitempty"`
	Feedback     string    `json:"feedback,omitempty"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// GradeInput is the body for grading a submission.
type GradeInput struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}
