// internal/domain/models/course.go
package models

import "time"

// Course publication states.
const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

// Course levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// CourseLevels lists the levels offered by forms.
var CourseLevels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// CourseStatuses lists the states offered by filters and forms.
var CourseStatuses = []string{CourseStatusDraft, CourseStatusPublished, CourseStatusArchived}

// Course is a backend-owned course record.
type Course struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug,omitempty"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Level          string    `json:"level"` // beginner | intermediate | advanced
	Language       string    `json:"language,omitempty"`
	Price          float64   `json:"price"`
	DiscountPrice  float64   `json:"discountPrice,omitempty"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	InstructorID   string    `json:"instructorId,omitempty"`
	InstructorName string    `json:"instructorName,omitempty"`
	Status         string    `json:"status"`
	IsPublished    bool      `json:"isPublished"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"reviewCount"`
	StudentCount   int       `json:"studentCount"`
	Duration       int       `json:"duration"` // minutes
	Tags           []string  `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CourseInput is the body for create/update calls.
type CourseInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Level         string   `json:"level"`
	Language      string   `json:"language,omitempty"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice,omitempty"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	InstructorID  string   `json:"instructorId,omitempty"`
	Status        string   `json:"status"`
	Tags          []string `json:"tags,omitempty"`
}
