// internal/app/features/modules/move.go
package modules

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/dalemusser/learnadmin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

var (
	errCannotMove   = errors.New("module already at end of course")
	errNotInCourse  = errors.New("module not in course")
	errBadDirection = errors.New("move direction must be up or down")
)

var moveMessages = map[error]string{
	errCannotMove:   "Module is already at that end of the course.",
	errNotInCourse:  "Module not found in this course.",
	errBadDirection: "Choose up or down to move a module.",
}

// HandleMove handles POST /modules/{id}/move with dir=up|down and course=<id>.
// The module swaps order indexes with its neighbour; modules whose indexes
// collide are renumbered 1..n first so every module ends up with a distinct
// position.
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	courseID := r.FormValue("course")
	dir := r.FormValue("dir")
	token := auth.Token(r)
	back := navigation.SafeBackURL(r, navigation.ModulesBackURL)

	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Module order updated.",
		Failure:  "Failed to reorder modules.",
		Redirect: back,
		Events:   []string{"modules:refresh"},
		Messages: moveMessages,
		Audit: &actions.Audit{
			Event: audit.EventModuleUpdated, Resource: "module", ResourceID: id,
			Details: map[string]string{"move": dir},
		},
	}, func(ctx context.Context) error {
		modules, err := h.courseModules(ctx, token, courseID)
		if err != nil {
			return err
		}
		changes, err := planMove(modules, id, dir)
		if err != nil {
			return err
		}
		for _, c := range changes {
			if err := h.API.Modules.Reorder(ctx, token, c.id, c.order); err != nil {
				return err
			}
		}
		return nil
	})
}

type orderChange struct {
	id    string
	order int
}

// planMove returns the order updates that move module id one step in dir
// within modules, which must already be sorted.
func planMove(modules []models.Module, id, dir string) ([]orderChange, error) {
	if dir != "up" && dir != "down" {
		return nil, errBadDirection
	}
	idx := -1
	for i, m := range modules {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errNotInCourse
	}
	target := idx - 1
	if dir == "down" {
		target = idx + 1
	}
	if target < 0 || target >= len(modules) {
		return nil, errCannotMove
	}

	// Normalize to 1..n, then swap the two positions.
	want := make([]int, len(modules))
	for i := range modules {
		want[i] = i + 1
	}
	want[idx], want[target] = want[target], want[idx]

	var changes []orderChange
	for i, m := range modules {
		if m.Order != want[i] {
			changes = append(changes, orderChange{id: m.ID, order: want[i]})
		}
	}
	return changes, nil
}
