// internal/domain/models/instructor.go
package models

import "time"

// Instructor account states.
const (
	InstructorPending   = "pending"
	InstructorApproved  = "approved"
	InstructorSuspended = "suspended"
)

// InstructorStatuses lists the states offered by filters.
var InstructorStatuses = []string{InstructorPending, InstructorApproved, InstructorSuspended}

// Instructor is a course author account.
type Instructor struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Expertise    []string  `json:"expertise,omitempty"`
	Status       string    `json:"status"`
	CourseCount  int       `json:"courseCount"`
	StudentCount int       `json:"studentCount"`
	Rating       float64   `json:"rating"`
	CreatedAt    time.Time `json:"createdAt"`
}
