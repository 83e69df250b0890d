// Package normalize canonicalizes form and query values before they are
// validated or sent to the backend.
package normalize

import (
	"strings"

	"github.com/dalemusser/learnadmin/internal/app/system/permissions"
)

// Email trims and lowercases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses inner runs of whitespace. Case is
// preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status trims and lowercases a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role returns the canonical spelling of an admin role.
func Role(s string) string {
	return permissions.Normalize(s)
}

// QueryParam trims a free-text query value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// FilterID trims an ID taken from a filter select. The "all" option means
// no filter and becomes "".
func FilterID(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}
