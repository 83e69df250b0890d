// internal/domain/models/user.go
package models

import "time"

// Learner account states.
const (
	UserActive  = "active"
	UserBlocked = "blocked"
)

// UserStatuses lists the learner states offered by filters.
var UserStatuses = []string{UserActive, UserBlocked}

// User is a learner account on the platform.
type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Avatar          string     `json:"avatar,omitempty"`
	Status          string     `json:"status"`
	EnrolledCourses int        `json:"enrolledCourses"`
	CreatedAt       time.Time  `json:"createdAt"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
}

// StatusUpdate is the PATCH body for account status changes.
type StatusUpdate struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}
