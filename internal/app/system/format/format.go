// Package format turns backend values into the display strings view models
// carry. Templates use only builtin funcs, so every number and date is
// formatted here.
package format

import (
	"strings"
	"time"

	"github.com/dalemusser/learnadmin/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Date renders t as "Jan 2, 2006", or "—" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// DatePtr is Date for optional timestamps.
func DatePtr(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return Date(*t)
}

// DateTime renders t as "Jan 2, 2006 3:04 PM" in UTC.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.UTC().Format("Jan 2, 2006 3:04 PM")
}

// Money renders an amount in dollars with thousands separators.
func Money(f float64) string {
	return printer.Sprintf("$%.2f", f)
}

// Count renders n with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Decimal renders f with one decimal place.
func Decimal(f float64) string {
	return printer.Sprintf("%.1f", f)
}

// Percent renders f (already 0..100) with one decimal and a percent sign.
func Percent(f float64) string {
	return printer.Sprintf("%.1f%%", f)
}

// Label turns a status value such as "in_progress" into "In Progress".
func Label(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(s)
}

// Options turns status values into select options.
func Options(values []string, selected string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: Label(v), Selected: v == selected})
	}
	return out
}

// CourseOptions lists courses by title for course pickers.
func CourseOptions(courses []models.Course, selected string) []Option {
	out := make([]Option, 0, len(courses))
	for _, c := range courses {
		out = append(out, Option{Value: c.ID, Label: c.Title, Selected: c.ID == selected})
	}
	return out
}

// Option is one <option> in a filter or form select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}
