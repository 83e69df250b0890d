// internal/domain/models/notification.go
package models

import "time"

// Notification audiences.
const (
	AudienceAll         = "all"
	AudienceStudents    = "students"
	AudienceInstructors = "instructors"
)

var NotificationAudiences = []string{AudienceAll, AudienceStudents, AudienceInstructors}

// Notification kinds, which decide how clients style the banner.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationPromo   = "promo"
)

var NotificationTypes = []string{NotificationInfo, NotificationWarning, NotificationPromo}

// Notification is a broadcast message sent from the dashboard.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Audience  string    `json:"audience"`
	Type      string    `json:"type"`
	SentBy    string    `json:"sentBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationInput is the body for sending a notification.
type NotificationInput struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Audience string `json:"audience"`
	Type     string `json:"type"`
}
