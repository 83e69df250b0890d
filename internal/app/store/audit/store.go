// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailed          = "login_failed"
	EventLoginFailedRateLimit = "login_failed_rate_limit"
	EventLogout               = "logout"
	EventSessionExpired       = "session_expired"
)

// Admin event types. Each names the dashboard mutation that was attempted;
// Success on the event records whether the backend accepted it.
const (
	EventCourseCreated      = "course_created"
	EventCourseUpdated      = "course_updated"
	EventCourseDeleted      = "course_deleted"
	EventCoursePublished    = "course_published"
	EventModuleCreated      = "module_created"
	EventModuleUpdated      = "module_updated"
	EventModuleDeleted      = "module_deleted"
	EventLessonCreated      = "lesson_created"
	EventLessonUpdated      = "lesson_updated"
	EventLessonDeleted      = "lesson_deleted"
	EventAssignmentCreated  = "assignment_created"
	EventAssignmentUpdated  = "assignment_updated"
	EventAssignmentDeleted  = "assignment_deleted"
	EventSubmissionGraded   = "submission_graded"
	EventEnrollmentUpdated  = "enrollment_updated"
	EventEnrollmentDeleted  = "enrollment_deleted"
	EventReviewModerated    = "review_moderated"
	EventReviewDeleted      = "review_deleted"
	EventUserStatusChanged  = "user_status_changed"
	EventInstructorStatus   = "instructor_status_changed"
	EventTicketReplied      = "ticket_replied"
	EventTicketStatus       = "ticket_status_changed"
	EventNotificationSent   = "notification_sent"
	EventNotificationDelete = "notification_deleted"
	EventAdminCreated       = "admin_created"
	EventAdminRoleChanged   = "admin_role_changed"
	EventAdminDeleted       = "admin_deleted"
	EventFileUploaded       = "file_uploaded"
	EventDataExported       = "data_exported"
)

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	// Event classification
	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// Who (backend admin identity, not a local record)
	ActorID    string `bson:"actor_id,omitempty"`
	ActorEmail string `bson:"actor_email,omitempty"`
	ActorRole  string `bson:"actor_role,omitempty"`

	// What
	Resource   string `bson:"resource,omitempty"`
	ResourceID string `bson:"resource_id,omitempty"`

	// Context
	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	// Outcome
	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	ActorID   string
	Category  string
	EventType string
	Resource  string
	Success   *bool
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

func (f QueryFilter) toBSON() bson.M {
	q := bson.M{}
	if f.ActorID != "" {
		q["actor_id"] = f.ActorID
	}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.EventType != "" {
		q["event_type"] = f.EventType
	}
	if f.Resource != "" {
		q["resource"] = f.Resource
	}
	if f.Success != nil {
		q["success"] = *f.Success
	}
	if f.StartTime != nil || f.EndTime != nil {
		tq := bson.M{}
		if f.StartTime != nil {
			tq["$gte"] = *f.StartTime
		}
		if f.EndTime != nil {
			tq["$lte"] = *f.EndTime
		}
		q["timestamp"] = tq
	}
	return q
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// Log records an audit event, filling ID and Timestamp when unset.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// Query retrieves audit events matching filter, newest first. Limit
// defaults to 100.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cur, err := s.c.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of events matching filter.
func (s *Store) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.toBSON())
}

// GetRecent retrieves the most recent events.
func (s *Store) GetRecent(ctx context.Context, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Limit: limit})
}

// GetByActor retrieves recent events performed by one admin.
func (s *Store) GetByActor(ctx context.Context, actorID string, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{ActorID: actorID, Limit: limit})
}

// EventTypes lists the distinct event types present, for filter dropdowns.
func (s *Store) EventTypes(ctx context.Context) ([]string, error) {
	vals, err := s.c.Distinct(ctx, "event_type", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out, nil
}
