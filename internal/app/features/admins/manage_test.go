package admins

import (
	"testing"

	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func TestLeavesNoSuperAdmin(t *testing.T) {
	one := []models.Admin{
		{ID: "s1", Role: "super_admin"},
		{ID: "a1", Role: "admin"},
	}
	two := append(one, models.Admin{ID: "s2", Role: "Super Admin"})

	tests := []struct {
		name string
		all  []models.Admin
		id   string
		want bool
	}{
		{"only super", one, "s1", true},
		{"plain admin", one, "a1", false},
		{"two supers", two, "s1", false},
		{"unknown id", one, "zz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := leavesNoSuperAdmin(tt.all, tt.id); got != tt.want {
				t.Errorf("leavesNoSuperAdmin = %v, want %v", got, tt.want)
			}
		})
	}
}
