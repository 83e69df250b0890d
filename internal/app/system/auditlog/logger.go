// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/ratelimit"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Destinations accepted by Config fields.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// Config selects where each event category goes.
type Config struct {
	Auth  string
	Admin string
}

// Uniform builds a Config that routes both categories to mode.
func Uniform(mode string) Config {
	return Config{Auth: mode, Admin: mode}
}

// Logger records audit events to MongoDB and/or zap. A nil *Logger is a
// valid no-op so handlers in tests can leave it unset.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil when only zap output is
// wanted.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) modeFor(category string) string {
	switch category {
	case audit.CategoryAuth:
		return l.config.Auth
	case audit.CategoryAdmin:
		return l.config.Admin
	}
	return ModeAll
}

// Log records event according to the category's configured mode.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	mode := l.modeFor(event.Category)
	if mode == ModeOff {
		return
	}
	if mode == ModeAll || mode == ModeLog {
		l.logToZap(event)
	}
	if (mode == ModeAll || mode == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID), zap.String("actor_role", event.ActorRole))
	}
	if event.Resource != "" {
		fields = append(fields, zap.String("resource", event.Resource), zap.String("resource_id", event.ResourceID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

func base(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, admin models.Admin) {
	e := base(r, audit.CategoryAuth, audit.EventLoginSuccess)
	e.ActorID, e.ActorEmail, e.ActorRole = admin.ID, admin.Email, admin.Role
	e.Success = true
	l.Log(ctx, e)
}

// LoginFailed logs a rejected sign-in with the backend's reason.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, reason string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailed)
	e.ActorEmail = email
	e.FailureReason = reason
	l.Log(ctx, e)
}

// LoginRateLimited logs a sign-in blocked by the login limiter.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, email string) {
	e := base(r, audit.CategoryAuth, audit.EventLoginFailedRateLimit)
	e.ActorEmail = email
	e.FailureReason = "rate limited"
	l.Log(ctx, e)
}

// Logout logs a sign-out by the current admin.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	e := withActor(r, base(r, audit.CategoryAuth, audit.EventLogout))
	e.Success = true
	l.Log(ctx, e)
}

// SessionExpired logs a backend 401 that ended the dashboard session.
func (l *Logger) SessionExpired(ctx context.Context, r *http.Request) {
	e := withActor(r, base(r, audit.CategoryAuth, audit.EventSessionExpired))
	e.Success = true
	l.Log(ctx, e)
}

// --- Admin Events ---

// Action logs a dashboard mutation performed by the current admin. A nil
// err marks it successful; otherwise err's text becomes the failure reason.
func (l *Logger) Action(ctx context.Context, r *http.Request, eventType, resource, resourceID string, err error, details map[string]string) {
	e := withActor(r, base(r, audit.CategoryAdmin, eventType))
	e.Resource = resource
	e.ResourceID = resourceID
	e.Details = details
	e.Success = err == nil
	if err != nil {
		e.FailureReason = err.Error()
	}
	l.Log(ctx, e)
}

func withActor(r *http.Request, e audit.Event) audit.Event {
	if u, ok := auth.CurrentUser(r); ok {
		e.ActorID, e.ActorEmail, e.ActorRole = u.ID, u.Email, u.Role
	}
	return e
}
