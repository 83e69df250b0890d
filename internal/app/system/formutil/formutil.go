// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation (locally or at the backend), the
// form is re-rendered with the admin's entered values and a message.
//
// Example usage:
//
//	type courseFormData struct {
//		formutil.Base
//		Title    string
//		Category string
//	}
//
//	data := courseFormData{Title: in.Title}
//	formutil.SetBase(&data.Base, w, r, "New Course", "/courses")
//	data.SetError(res.First())
//	templates.Render(w, r, "course_form", data)
package formutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/system/viewdata"
)

// Base is embedded by form view models.
type Base struct {
	viewdata.BaseVM
	Error string
}

// SetBase populates the common fields from the request.
func SetBase(b *Base, w http.ResponseWriter, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(w, r, title, backDefault)
}

// SetError sets the message shown above the form.
func (b *Base) SetError(msg string) {
	b.Error = msg
}

// HasError reports whether an error message is set.
func (b Base) HasError() bool { return b.Error != "" }

// Trimmed returns the trimmed form value for key.
func Trimmed(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// Int parses a form value as an int. Blank values yield def; ok is false
// only when a non-blank value fails to parse.
func Int(r *http.Request, key string, def int) (int, bool) {
	s := Trimmed(r, key)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def, false
	}
	return n, true
}

// Float parses a form value as a float64 with the same rules as Int.
func Float(r *http.Request, key string, def float64) (float64, bool) {
	s := Trimmed(r, key)
	if s == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def, false
	}
	return f, true
}

// Checkbox reports whether an HTML checkbox named key was ticked.
func Checkbox(r *http.Request, key string) bool {
	switch strings.ToLower(Trimmed(r, key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// List splits a comma-separated form value, dropping blanks.
func List(r *http.Request, key string) []string {
	var out []string
	for _, part := range strings.Split(r.FormValue(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
