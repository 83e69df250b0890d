// internal/domain/models/lesson.go
package models

import "time"

// Lesson types.
const (
	LessonTypeVideo    = "video"
	LessonTypeArticle  = "article"
	LessonTypeDocument = "document"
)

// LessonTypes lists the lesson types in form order.
var LessonTypes = []string{LessonTypeVideo, LessonTypeArticle, LessonTypeDocument}

// Lesson is a single unit of content inside a module. Content holds rich
// text and is sanitized before it is stored or rendered.
type Lesson struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	ModuleID    string    `json:"moduleId"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	DocumentURL string    `json:"documentUrl,omitempty"`
	Duration    int       `json:"duration"` // minutes
	Order       int       `json:"order"`
	IsPreview   bool      `json:"isPreview"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LessonInput is the body for create/update calls.
type LessonInput struct {
	CourseID    string `json:"courseId"`
	ModuleID    string `json:"moduleId"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl,omitempty"`
	DocumentURL string `json:"documentUrl,omitempty"`
	Duration    int    `json:"duration"`
	Order       int    `json:"order"`
	IsPreview   bool   `json:"isPreview"`
}
