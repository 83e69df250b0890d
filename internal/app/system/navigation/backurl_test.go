package navigation

import (
	"net/http/httptest"
	"testing"
)

func TestSafeBackURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		opts   BackURLOptions
		want   string
	}{
		{"valid return", "/x?return=/courses/c1", CoursesBackURL, "/courses/c1"},
		{"no return", "/x", CoursesBackURL, "/courses"},
		{"external rejected", "/x?return=https://evil.example.com/", CoursesBackURL, "/courses"},
		{"wrong prefix", "/x?return=/users", CoursesBackURL, "/courses"},
		{"excluded subpath", "/x?return=/courses/c1/edit", CoursesBackURL, "/courses"},
		{"preserve param", "/x?course=c1", ModulesBackURL, "/modules?course=c1"},
		{"preserve all skipped", "/x?course=all", ModulesBackURL, "/modules"},
		{"preserve escapes", "/x?module=a%26b", LessonsBackURL, "/lessons?module=a%26b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if got := SafeBackURL(req, tt.opts); got != tt.want {
				t.Errorf("SafeBackURL = %q, want %q", got, tt.want)
			}
		})
	}
}
