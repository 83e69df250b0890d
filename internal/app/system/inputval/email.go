package inputval

import "strings"

const localSpecials = "!#$%&'*+/=?^_`{|}~-."

// IsValidEmail reports whether s is a bare addr-spec (no display name)
// with a dot-atom local part and a hostname domain. Single-label domains
// such as "localhost" are accepted.
func IsValidEmail(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if !dotAtom(local) || !dotAtom(domain) {
		return false
	}
	for _, r := range local {
		if !isAlnum(r) && !strings.ContainsRune(localSpecials, r) {
			return false
		}
	}
	for _, label := range strings.Split(domain, ".") {
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			if !isAlnum(r) && r != '-' {
				return false
			}
		}
	}
	return true
}

func dotAtom(s string) bool {
	return s != "" && !strings.HasPrefix(s, ".") && !strings.HasSuffix(s, ".") && !strings.Contains(s, "..")
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
