// internal/app/features/modules/delete.go
package modules

import (
	"context"
	"net/http"

	"github.com/dalemusser/learnadmin/internal/app/store/audit"
	"github.com/dalemusser/learnadmin/internal/app/system/actions"
	"github.com/dalemusser/learnadmin/internal/app/system/auth"
	"github.com/dalemusser/learnadmin/internal/app/system/navigation"
	"github.com/go-chi/chi/v5"
)

// HandleDelete handles POST /modules/{id}/delete. Lessons inside the module
// go with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := navigation.SafeBackURL(r, navigation.ModulesBackURL)
	_ = h.Act.Run(w, r, actions.Spec{
		Success:  "Module deleted.",
		Failure:  "Failed to delete module.",
		Redirect: back,
		Back:     back,
		Events:   []string{"modules:refresh"},
		Audit:    &actions.Audit{Event: audit.EventModuleDeleted, Resource: "module", ResourceID: id},
	}, func(ctx context.Context) error {
		return h.API.Modules.Delete(ctx, auth.Token(r), id)
	})
}
