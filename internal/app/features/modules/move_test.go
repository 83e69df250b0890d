package modules

import (
	"errors"
	"testing"

	"github.com/dalemusser/learnadmin/internal/domain/models"
)

func TestPlanMove(t *testing.T) {
	mods := []models.Module{
		{ID: "a", Order: 1},
		{ID: "b", Order: 2},
		{ID: "c", Order: 3},
	}
	tests := []struct {
		name string
		mods []models.Module
		id   string
		dir  string
		want []orderChange
		err  error
	}{
		{"down swaps with next", mods, "a", "down", []orderChange{{"a", 2}, {"b", 1}}, nil},
		{"up swaps with previous", mods, "c", "up", []orderChange{{"b", 3}, {"c", 2}}, nil},
		{"first cannot move up", mods, "a", "up", nil, errCannotMove},
		{"last cannot move down", mods, "c", "down", nil, errCannotMove},
		{"unknown id", mods, "zz", "up", nil, errNotInCourse},
		{"empty direction", mods, "b", "", nil, errBadDirection},
		{"unknown direction", mods, "b", "sideways", nil, errBadDirection},
		{"direction is case sensitive", mods, "b", "UP", nil, errBadDirection},
		{
			"duplicate orders are renumbered",
			[]models.Module{{ID: "a", Order: 1}, {ID: "b", Order: 1}, {ID: "c", Order: 1}},
			"b", "down",
			[]orderChange{{"b", 3}, {"c", 2}},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := planMove(tt.mods, tt.id, tt.dir)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v (changes %v)", err, tt.err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("changes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("changes[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlanMove_EdgeError(t *testing.T) {
	_, err := planMove([]models.Module{{ID: "a", Order: 1}}, "a", "down")
	if !errors.Is(err, errCannotMove) {
		t.Errorf("err = %v, want errCannotMove", err)
	}
}

func TestOrdered(t *testing.T) {
	in := []models.Module{
		{ID: "x", CourseID: "c1", Order: 2},
		{ID: "y", CourseID: "c1", Order: 1, Title: "B"},
		{ID: "z", CourseID: "c1", Order: 1, Title: "A"},
	}
	got := ordered(in)
	if got[0].ID != "z" || got[1].ID != "y" || got[2].ID != "x" {
		t.Errorf("order = %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if in[0].ID != "x" {
		t.Error("input slice was modified")
	}
}
