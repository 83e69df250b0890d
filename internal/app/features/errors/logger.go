// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs handler failures with request context and renders the
// matching friendly page.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

func (l *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}

// LogServerError logs msg at error level and renders a 500 page showing
// userMsg with a link to backURL.
func (l *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	l.log.Error(msg, l.fields(r, err)...)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs msg at warn level and renders a 400 page.
func (l *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	l.log.Warn(msg, l.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogNotFound logs msg at info level and renders a 404 page.
func (l *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	l.log.Info(msg, l.fields(r, err)...)
	RenderNotFound(w, r, userMsg, backURL)
}

// HTMXLogServerError logs msg and answers an HTMX request with a bare 500
// carrying userMsg, which the layout script shows as a toast.
func (l *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	l.log.Error(msg, l.fields(r, err)...)
	http.Error(w, userMsg, http.StatusInternalServerError)
}
