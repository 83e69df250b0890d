// Package navigation provides helpers for safe URL navigation and redirects.
package navigation

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

// BackURLOptions configures the behavior of SafeBackURL.
type BackURLOptions struct {
	// AllowedPrefix is the required URL prefix (e.g., "/courses").
	// If empty, any safe URL is allowed.
	AllowedPrefix string

	// ExcludedSubpaths are subpath patterns to reject (e.g., "/edit", "/delete").
	// These prevent redirect loops back to action pages.
	ExcludedSubpaths []string

	// Fallback is the default URL if no valid return URL is found.
	Fallback string

	// PreserveQueryParam is an optional query parameter carried onto the
	// fallback, e.g. "course" so a module form returns to its course's list.
	PreserveQueryParam string
}

// SafeBackURL extracts and validates a return URL from the request.
//
// It checks both the query parameter and form value for "return", rejects
// anything that is not a local path, optionally validates the prefix, and
// excludes specified subpaths to prevent redirect loops.
func SafeBackURL(r *http.Request, opts BackURLOptions) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "")
	}

	if ret != "" && validReturn(ret, opts) {
		return ret
	}

	fallback := opts.Fallback
	if opts.PreserveQueryParam != "" {
		param := query.Get(r, opts.PreserveQueryParam)
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam))
		}
		if param == "" {
			param = strings.TrimSpace(r.FormValue(opts.PreserveQueryParam + "Id"))
		}
		if param != "" && param != "all" {
			sep := "?"
			if strings.Contains(fallback, "?") {
				sep = "&"
			}
			fallback += sep + opts.PreserveQueryParam + "=" + url.QueryEscape(param)
		}
	}
	return fallback
}

func validReturn(ret string, opts BackURLOptions) bool {
	if opts.AllowedPrefix != "" && !strings.HasPrefix(ret, opts.AllowedPrefix) {
		return false
	}
	for _, excluded := range opts.ExcludedSubpaths {
		if strings.Contains(ret, excluded) {
			return false
		}
	}
	return true
}

var formPages = []string{"/edit", "/delete", "/new"}

// Common back URL configurations for reuse across features.
var (
	CoursesBackURL = BackURLOptions{
		AllowedPrefix:    "/courses",
		ExcludedSubpaths: formPages,
		Fallback:         "/courses",
	}

	ModulesBackURL = BackURLOptions{
		AllowedPrefix:      "/modules",
		ExcludedSubpaths:   formPages,
		Fallback:           "/modules",
		PreserveQueryParam: "course",
	}

	LessonsBackURL = BackURLOptions{
		AllowedPrefix:      "/lessons",
		ExcludedSubpaths:   formPages,
		Fallback:           "/lessons",
		PreserveQueryParam: "module",
	}

	AssignmentsBackURL = BackURLOptions{
		AllowedPrefix:      "/assignments",
		ExcludedSubpaths:   formPages,
		Fallback:           "/assignments",
		PreserveQueryParam: "course",
	}

	EnrollmentsBackURL = BackURLOptions{
		AllowedPrefix:    "/enrollments",
		ExcludedSubpaths: formPages,
		Fallback:         "/enrollments",
	}

	TicketsBackURL = BackURLOptions{
		AllowedPrefix: "/tickets",
		Fallback:      "/tickets",
	}
)
