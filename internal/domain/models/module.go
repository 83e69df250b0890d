// internal/domain/models/module.go
package models

import "time"

// Module is a section within a course.
type Module struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	LessonCount int       `json:"lessonCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ModuleInput is the body for create/update calls.
type ModuleInput struct {
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}
