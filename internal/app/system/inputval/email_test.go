package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"admin@learnadmin.io",
		"first.last@school.example.edu",
		"ops+alerts@example.com",
		"o'brien@example.ie",
		"dev@localhost",
		"a@b.co",
	}
	invalid := []string{
		"",
		" admin@example.com",
		"admin@example.com ",
		"admin",
		"admin@",
		"@example.com",
		".admin@example.com",
		"admin.@example.com",
		"ad..min@example.com",
		"admin@.example.com",
		"admin@example..com",
		"admin@-example.com",
		"admin@example-.com",
		"admin@exa_mple.com",
		"Site Admin <admin@example.com>",
		"ad min@example.com",
		"admin@exam ple.com",
	}
	for _, s := range valid {
		if !IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmail(s) {
			t.Errorf("IsValidEmail(%q) = true, want false", s)
		}
	}
}
