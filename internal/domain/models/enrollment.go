// internal/domain/models/enrollment.go
package models

import "time"

// Enrollment states.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentPending   = "pending"
	EnrollmentCancelled = "cancelled"
)

// Payment states.
const (
	PaymentPaid     = "paid"
	PaymentPending  = "pending"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// EnrollmentStatuses and PaymentStatuses are the values offered by filters.
var (
	EnrollmentStatuses = []string{EnrollmentActive, EnrollmentCompleted, EnrollmentPending, EnrollmentCancelled}
	PaymentStatuses    = []string{PaymentPaid, PaymentPending, PaymentFailed, PaymentRefunded}
)

// Enrollment is a student's registration against a course, carrying payment
// and progress status.
type Enrollment struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"studentId"`
	StudentName   string     `json:"studentName"`
	StudentEmail  string     `json:"studentEmail"`
	CourseID      string     `json:"courseId"`
	CourseTitle   string     `json:"courseTitle"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	AmountPaid    float64    `json:"amountPaid"`
	Progress      float64    `json:"progress"` // 0-100
	EnrolledAt    time.Time  `json:"enrolledAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// EnrollmentUpdate is the PATCH body for an enrollment.
type EnrollmentUpdate struct {
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}
